package mcp

// getAllTools returns all tools exposed by the server.
func getAllTools() []Tool {
	return []Tool{
		{
			Name: "job_finder",
			Description: "Smart job tool: analyze descriptions, fetch URLs, or search jobs based on free text. " +
				"Use this to evaluate job descriptions or search for jobs using freeform goals. " +
				"Returns insights, fetched job descriptions, or relevant job links.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"user_goal": map[string]any{
						"type":        "string",
						"description": "The user's goal (can be a description, intent, or freeform query)",
					},
					"job_description": map[string]any{
						"type":        "string",
						"description": "Full job description text, if available.",
					},
					"job_url": map[string]any{
						"type":        "string",
						"description": "A URL to fetch a job description from.",
					},
					"raw": map[string]any{
						"type":        "boolean",
						"description": "Return raw HTML content if true",
					},
				},
				"required": []string{"user_goal"},
			},
		},
		{
			Name:        "validate",
			Description: "Returns the server owner's number for client-side validation.",
			InputSchema: map[string]any{
				"type": "object",
			},
		},
	}
}
