// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handoff builds the WhatsApp deep links that move a visitor from
// the site into a chat with the coach.
package handoff

import (
	"fmt"
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// Linker builds links for a single business number.
type Linker struct {
	number string
}

// New keeps only the digits of number, so "+91 88407 23476" and
// "918840723476" produce the same links.
func New(number string) Linker {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return Linker{number: b.String()}
}

// Number returns the normalized digits.
func (l Linker) Number() string {
	return l.number
}

// Chat opens an empty conversation.
func (l Linker) Chat() string {
	return baseURL + l.number
}

// Text opens a conversation with a prefilled message. Spaces are encoded as
// %20 because WhatsApp shows a literal "+" otherwise.
func (l Linker) Text(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return l.Chat()
	}
	return baseURL + l.number + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}

// Coaching is the generic enquiry used by the hero and blog pages.
func (l Linker) Coaching(site string) string {
	return l.Text(fmt.Sprintf("I want to know more about %s coaching", site))
}

// Offer asks about a specific offer.
func (l Linker) Offer(title string) string {
	return l.Text(fmt.Sprintf("I am interested in the %s offer", title))
}

// Program asks about a specific program.
func (l Linker) Program(title string) string {
	return l.Text(fmt.Sprintf("I want to know more about the %s program", title))
}

// Article asks a follow-up question about a blog post.
func (l Linker) Article(title string) string {
	return l.Text(fmt.Sprintf("I just read \"%s\" and have a question", title))
}

// FollowUp is used from the admin leads list to reply to an enquiry.
// The lead's own phone number becomes the recipient.
func FollowUp(phone, name, site string) string {
	return New(phone).Text(fmt.Sprintf("Hi %s, thanks for reaching out to %s!", name, site))
}
