// Package gmail wraps the Gmail and People APIs behind a per-account
// client.
//
// The client exposes message listing with category label filters, page
// aggregation with a hard cap (FetchAll), envelope summaries, sending with
// reply threading and forwarding, drafts, labels, attachments, and contact
// search. Listing is abstracted behind the Lister interface so the
// aggregation logic is testable without the live API.
package gmail
