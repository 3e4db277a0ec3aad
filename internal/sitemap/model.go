// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sitemap

import (
	"encoding/xml"
	"time"
)

// Namespace is the sitemaps.org schema namespace for <urlset>.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet is the sitemap root element.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one sitemap entry.
type URL struct {
	Location     string  `xml:"loc"`
	LastModified string  `xml:"lastmod,omitempty"`
	ChangeFreq   string  `xml:"changefreq,omitempty"`
	Priority     float32 `xml:"priority,omitempty"`
}

// ChangeFrequency is the sitemap changefreq hint.
type ChangeFrequency string

const (
	ChangeFreqDaily   ChangeFrequency = "daily"
	ChangeFreqWeekly  ChangeFrequency = "weekly"
	ChangeFreqMonthly ChangeFrequency = "monthly"
	ChangeFreqYearly  ChangeFrequency = "yearly"
)

// Item is a sitemap entry before serialization.
type Item struct {
	URL          string          `json:"url"`
	LastModified time.Time       `json:"last_modified,omitempty"`
	ChangeFreq   ChangeFrequency `json:"change_freq"`
	Priority     float32         `json:"priority"`
}

// ToURL converts the item to its XML form. A zero LastModified is omitted.
func (i *Item) ToURL() URL {
	u := URL{
		Location:   i.URL,
		ChangeFreq: string(i.ChangeFreq),
		Priority:   i.Priority,
	}
	if !i.LastModified.IsZero() {
		u.LastModified = i.LastModified.Format(time.RFC3339)
	}
	return u
}
