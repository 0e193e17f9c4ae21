package mcpserver

type addPreferenceArgs struct {
	Text string `json:"text"`
}

type searchPreferencesArgs struct {
	Query string `json:"query"`
}

var addPreferenceSchema = []byte(`{
  "type": "object",
  "properties": {
    "text": {
      "type": "string",
      "description": "The content to store in memory, including code, documentation, and context"
    }
  },
  "required": ["text"]
}`)

var getAllPreferencesSchema = []byte(`{
  "type": "object",
  "properties": {}
}`)

var searchPreferencesSchema = []byte(`{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Search query string describing what you're looking for. Can be natural language or specific technical terms."
    }
  },
  "required": ["query"]
}`)
