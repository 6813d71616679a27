package importer

// worldSchema is the JSON Schema a pasted lesson must satisfy. Every field is
// optional; normalization fills the gaps afterwards. The schema's job is to
// reject structurally wrong payloads (a vocab entry that is a string, a
// patterns value that is an array) before they reach the game state.
const worldSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"id": { "type": "string" },
		"title": { "type": "string" },
		"weekLabel": { "type": "string" },
		"phonicsFocus": {
			"type": "array",
			"items": { "type": "string" }
		},
		"vocab": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": { "type": "string" },
					"hanzi": { "type": "string" },
					"pinyin": { "type": "string" },
					"meaning": { "type": "string" }
				}
			}
		},
		"characters": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"hanzi": { "type": "string" },
					"pinyin": { "type": "string" }
				}
			}
		},
		"patterns": {
			"type": "object",
			"properties": {
				"abb": {
					"type": "array",
					"items": { "type": "string" }
				}
			}
		},
		"grammarPoints": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"type": { "type": "string" },
					"example": { "type": "string" },
					"note": { "type": "string" }
				}
			}
		},
		"textLines": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"hanzi": { "type": "string" },
					"pinyin": { "type": "string" }
				}
			}
		}
	}
}`
