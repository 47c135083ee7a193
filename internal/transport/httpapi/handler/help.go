package handler

import "net/http"

// Article is a static help entry
type Article struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// helpArticles is the fixed help content served to every user
var helpArticles = []Article{
	{
		Title: "What does this app track?",
		Body:  "Every deposit you make into a betting site and every withdrawal you take out. The net total shows how much you are up or down overall: withdrawals minus deposits.",
	},
	{
		Title: "How do I add a transaction?",
		Body:  "Open the add screen, enter the betting site name, pick deposit or withdrawal, and type the amount. Decimal amounts accept both a dot and a comma.",
	},
	{
		Title: "Why is my net total negative?",
		Body:  "A negative net means you have deposited more than you have withdrawn. Deposits count against your bankroll; withdrawals count in your favor.",
	},
	{
		Title: "Can I edit a transaction?",
		Body:  "No. Transactions are immutable once created. If you made a mistake, delete the transaction and add it again.",
	},
	{
		Title: "Is my data shared with other users?",
		Body:  "No. Your transactions and profile are stored under your own account and are only visible when you are signed in.",
	},
	{
		Title: "Where can I get help with gambling?",
		Body:  "If betting stops feeling like entertainment, talk to someone. Gamblers Anonymous runs free support groups worldwide.",
		URL:   "https://www.gamblersanonymous.org",
	},
}

// GetHelp handles GET /help
func GetHelp(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]Article{"articles": helpArticles})
}
