package psl

import "testing"

func TestRegistrableSuffix(t *testing.T) {
	var oracle Oracle

	for _, c := range []struct {
		domain string
		want   string
		ok     bool
	}{
		{"example.com", "example.com", true},
		{"a.b.example.com", "example.com", true},
		{"www.example.co.uk", "example.co.uk", true},
		{"Example.COM.", "example.com", true},
		{"moeyc.github.io", "moeyc.github.io", true},
		{"com", "", false},
		{"co.uk", "", false},
		{"192.168.1.1", "", false},
		{"::1", "", false},
		{"", "", false},
	} {
		got, ok := oracle.RegistrableSuffix(c.domain)
		if got != c.want || ok != c.ok {
			t.Errorf("RegistrableSuffix(%q) = %q, %v, want %q, %v", c.domain, got, ok, c.want, c.ok)
		}
	}
}

func TestIsICANNOrPrivate(t *testing.T) {
	var oracle Oracle

	for _, c := range []struct {
		domain string
		want   bool
	}{
		{"example.com", true},
		{"example.co.uk", true},
		{"moeyc.github.io", true},
		{"host.localdomain", false},
		{"", false},
	} {
		if got := oracle.IsICANNOrPrivate(c.domain); got != c.want {
			t.Errorf("IsICANNOrPrivate(%q) = %v, want %v", c.domain, got, c.want)
		}
	}
}

func TestIsIPLiteral(t *testing.T) {
	var oracle Oracle

	for _, c := range []struct {
		domain string
		want   bool
	}{
		{"192.168.1.1", true},
		{"::1", true},
		{"[2001:db8::1]", true},
		{"example.com", false},
		{"1.2.3", false},
		{"", false},
	} {
		if got := oracle.IsIPLiteral(c.domain); got != c.want {
			t.Errorf("IsIPLiteral(%q) = %v, want %v", c.domain, got, c.want)
		}
	}
}
