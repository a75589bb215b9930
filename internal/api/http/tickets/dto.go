package tickets

type commitCommentRequest struct {
	JiraTicket    string `json:"jira_ticket"`
	CommitMessage string `json:"commit_message"`
	CommitURL     string `json:"commit_url,omitempty"`
}
