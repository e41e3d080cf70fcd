package geoip

import "testing"

func TestConfigEnabled(t *testing.T) {
	for _, c := range []struct {
		cfg  Config
		want bool
	}{
		{Config{}, false},
		{Config{Path: "Country.mmdb"}, false},
		{Config{DropCountries: []string{"US"}}, false},
		{Config{Path: "Country.mmdb", DropCountries: []string{"US"}}, true},
	} {
		if got := c.cfg.Enabled(); got != c.want {
			t.Errorf("%+v.Enabled() = %v, want %v", c.cfg, got, c.want)
		}
	}
}

func TestOpenFilterMissingDatabase(t *testing.T) {
	cfg := Config{Path: "testdata/nonexistent.mmdb", DropCountries: []string{"US"}}
	if _, err := cfg.OpenFilter(); err == nil {
		t.Fatal("OpenFilter succeeded on a nonexistent database")
	}
}
