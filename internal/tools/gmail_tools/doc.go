// Package gmail_tools exposes the Gmail mailbox as MCP tools.
//
// The two search tools (gmail_get_recent_emails, gmail_search_emails) run
// through the search orchestrator, which normalizes queries against the
// configured timezone and aggregates result pages. The remaining tools are
// thin pass-throughs to the Gmail client: reading, sending, replying,
// forwarding, label management, drafts, attachments and contact search.
//
// Write operations are only registered when the server runs with writes
// enabled. Handlers return tool errors via mcp.NewToolResultError rather
// than Go errors so the dispatch layer can present them to the agent.
package gmail_tools
