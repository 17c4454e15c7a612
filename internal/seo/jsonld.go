package seo

import (
	"encoding/json"
	"time"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string, sameAs ...string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, inLanguage string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if inLanguage != "" {
		m["inLanguage"] = inLanguage
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// EventInfo is the subset of an event rendered as schema.org Event.
type EventInfo struct {
	Name        string
	Description string
	URL         string
	Location    string
	Starts      time.Time
	Ends        time.Time
	Organizer   string
}

// Event returns a schema.org Event payload.
func Event(e EventInfo) map[string]any {
	m := map[string]any{
		"@context":            "https://schema.org",
		"@type":               "Event",
		"name":                e.Name,
		"eventStatus":         "https://schema.org/EventScheduled",
		"eventAttendanceMode": "https://schema.org/OfflineEventAttendanceMode",
	}
	if e.Description != "" {
		m["description"] = e.Description
	}
	if e.URL != "" {
		m["url"] = e.URL
	}
	if !e.Starts.IsZero() {
		m["startDate"] = e.Starts.Format(time.RFC3339)
	}
	if !e.Ends.IsZero() {
		m["endDate"] = e.Ends.Format(time.RFC3339)
	}
	if e.Location != "" {
		m["location"] = map[string]any{
			"@type":   "Place",
			"name":    e.Location,
			"address": map[string]any{"@type": "PostalAddress", "addressLocality": "Sharjah", "addressCountry": "AE"},
		}
	}
	if e.Organizer != "" {
		m["organizer"] = map[string]any{"@type": "Organization", "name": e.Organizer}
	}
	return m
}

// JobInfo is the subset of a job opening rendered as schema.org JobPosting.
type JobInfo struct {
	Title          string
	Description    string
	Posted         time.Time
	EmploymentType string
	Location       string
	Organization   string
	OrgURL         string
}

// JobPosting returns a schema.org JobPosting payload.
func JobPosting(j JobInfo) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "JobPosting",
		"title":       j.Title,
		"description": j.Description,
		"hiringOrganization": map[string]any{
			"@type":  "Organization",
			"name":   j.Organization,
			"sameAs": j.OrgURL,
		},
		"jobLocation": map[string]any{
			"@type": "Place",
			"address": map[string]any{
				"@type":           "PostalAddress",
				"addressLocality": j.Location,
				"addressCountry":  "AE",
			},
		},
	}
	if !j.Posted.IsZero() {
		m["datePosted"] = j.Posted.Format("2006-01-02")
	}
	if j.EmploymentType != "" {
		m["employmentType"] = j.EmploymentType
	}
	return m
}

// Article returns a minimal Article schema payload.
func Article(headline, url, imageURL, authorName string, published time.Time) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if authorName != "" {
		m["author"] = map[string]any{"@type": "Person", "name": authorName}
	}
	if !published.IsZero() {
		m["datePublished"] = published.Format("2006-01-02")
	}
	return m
}
