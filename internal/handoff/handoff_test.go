// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handoff

import "testing"

func TestNewNormalizesNumber(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"918840723476", "918840723476"},
		{"+91 88407 23476", "918840723476"},
		{"(91) 8840-723476", "918840723476"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := New(tt.in).Number(); got != tt.want {
			t.Errorf("New(%q).Number() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLinks(t *testing.T) {
	l := New("918840723476")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"chat", l.Chat(), "https://wa.me/918840723476"},
		{"blank text falls back to chat", l.Text("   "), "https://wa.me/918840723476"},
		{"coaching", l.Coaching("Sura Fitness"),
			"https://wa.me/918840723476?text=I%20want%20to%20know%20more%20about%20Sura%20Fitness%20coaching"},
		{"offer escapes title", l.Offer("30% Off & More"),
			"https://wa.me/918840723476?text=I%20am%20interested%20in%20the%2030%25%20Off%20%26%20More%20offer"},
		{"program", l.Program("Fat Loss"),
			"https://wa.me/918840723476?text=I%20want%20to%20know%20more%20about%20the%20Fat%20Loss%20program"},
		{"article quotes", l.Article("Why Protein"),
			"https://wa.me/918840723476?text=I%20just%20read%20%22Why%20Protein%22%20and%20have%20a%20question"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("\n got %s\nwant %s", tt.got, tt.want)
			}
		})
	}
}

func TestFollowUp(t *testing.T) {
	got := FollowUp("+91 98765 43210", "Priya", "Sura Fitness")
	want := "https://wa.me/919876543210?text=Hi%20Priya%2C%20thanks%20for%20reaching%20out%20to%20Sura%20Fitness%21"
	if got != want {
		t.Errorf("\n got %s\nwant %s", got, want)
	}
}
