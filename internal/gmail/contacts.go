package gmail

import (
	"context"
	"strings"

	"google.golang.org/api/people/v1"
)

// Contact represents a simplified contact entry.
type Contact struct {
	ResourceName string
	DisplayName  string
	EmailAddress string
	PhoneNumber  string
}

// SearchContacts searches personal contacts, "other contacts" the user has
// corresponded with, and the Workspace directory, merged and deduplicated
// by email address. Individual sources failing does not fail the search;
// the directory source in particular only exists for Workspace accounts.
func (c *Client) SearchContacts(ctx context.Context, q string, pageSize int) ([]*Contact, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	var all []*Contact
	seen := make(map[string]bool)
	queryLower := strings.ToLower(q)

	// Overshoot per source so the final cut still has coverage from each.
	target := pageSize * 10

	resp, err := c.peopleSvc.People.SearchContacts().
		Query(q).
		ReadMask("names,emailAddresses,phoneNumbers").
		PageSize(int64(pageSize * 2)).
		Context(ctx).
		Do()
	if err == nil {
		for _, result := range resp.Results {
			all = appendContact(all, seen, extractContact(result.Person))
		}
	}

	// Other contacts have no server-side search; page through and filter
	// locally, bounded to ten pages.
	pageToken := ""
	for pages := 0; pages < 10; pages++ {
		call := c.peopleSvc.OtherContacts.List().
			ReadMask("names,emailAddresses,phoneNumbers").
			PageSize(100).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		otherResp, err := call.Do()
		if err != nil {
			break
		}
		for _, person := range otherResp.OtherContacts {
			if contact := extractContact(person); contact != nil && matchesQuery(contact, queryLower) {
				all = appendContact(all, seen, contact)
			}
		}
		pageToken = otherResp.NextPageToken
		if pageToken == "" || len(all) >= target {
			break
		}
	}

	dirResp, err := c.peopleSvc.People.SearchDirectoryPeople().
		Query(q).
		ReadMask("names,emailAddresses,phoneNumbers").
		PageSize(int64(pageSize * 2)).
		Context(ctx).
		Do()
	if err == nil {
		for _, person := range dirResp.People {
			all = appendContact(all, seen, extractContact(person))
		}
	}

	if len(all) > pageSize {
		all = all[:pageSize]
	}
	return all, nil
}

func appendContact(all []*Contact, seen map[string]bool, contact *Contact) []*Contact {
	if contact == nil || contact.EmailAddress == "" || seen[contact.EmailAddress] {
		return all
	}
	seen[contact.EmailAddress] = true
	return append(all, contact)
}

func extractContact(person *people.Person) *Contact {
	if person == nil {
		return nil
	}

	contact := &Contact{ResourceName: person.ResourceName}
	if len(person.Names) > 0 {
		contact.DisplayName = person.Names[0].DisplayName
	}
	if len(person.EmailAddresses) > 0 {
		contact.EmailAddress = person.EmailAddresses[0].Value
	}
	if len(person.PhoneNumbers) > 0 {
		contact.PhoneNumber = person.PhoneNumbers[0].Value
	}

	if contact.DisplayName == "" && contact.EmailAddress == "" && contact.PhoneNumber == "" {
		return nil
	}
	return contact
}

func matchesQuery(contact *Contact, queryLower string) bool {
	if queryLower == "" {
		return true
	}
	if strings.Contains(strings.ToLower(contact.DisplayName), queryLower) {
		return true
	}
	if strings.Contains(strings.ToLower(contact.EmailAddress), queryLower) {
		return true
	}
	return strings.Contains(contact.PhoneNumber, queryLower)
}
