package mcpserver

import "github.com/MegaGrindStone/go-mcp"

var toolList = mcp.ListToolsResult{
	Tools: []mcp.Tool{
		{
			Name: "add_coding_preference",
			Description: `
Add a new coding preference to mem0. This tool stores code snippets, implementation details,
and coding patterns for future reference. Store every code snippet. When storing code, you should include:
- Complete code with all necessary imports and dependencies
- Language/framework version information (e.g., "Python 3.9", "React 18")
- Full implementation context and any required setup/configuration
- Detailed comments explaining the logic, especially for complex sections
- Example usage or test cases demonstrating the code
- Any known limitations, edge cases, or performance considerations
- Related patterns or alternative approaches
- Links to relevant documentation or resources
- Environment setup requirements (if applicable)
- Error handling and debugging tips
The preference will be indexed for semantic search and can be retrieved later using natural language queries.
      `,
			InputSchema: addPreferenceSchema,
		},
		{
			Name: "get_all_coding_preferences",
			Description: `
Retrieve all stored coding preferences for the default user. Call this tool when you need
complete context of all previously stored preferences. This is useful when:
- You need to analyze all available code patterns
- You want to check all stored implementation examples
- You need to review the full history of stored solutions
- You want to ensure no relevant information is missed
Returns a comprehensive list of:
- Code snippets and implementation patterns
- Programming knowledge and best practices
- Technical documentation and examples
- Setup and configuration guides
Results are returned in JSON format with metadata.
      `,
			InputSchema: getAllPreferencesSchema,
		},
		{
			Name: "search_coding_preferences",
			Description: `
Search through stored coding preferences using semantic search. This tool should be called
for EVERY user query to find relevant code and implementation details. It helps find:
- Specific code implementations or patterns
- Solutions to programming problems
- Best practices and coding standards
- Setup and configuration guides
- Technical documentation and examples
The search uses natural language understanding to find relevant matches, so you can
describe what you're looking for in plain English. Always search the preferences before
providing answers to ensure you leverage existing knowledge.
      `,
			InputSchema: searchPreferencesSchema,
		},
	},
}
