package build

import (
	"context"
	"testing"
	"time"

	"github.com/MoeYc/Surge/source"
	"go.uber.org/zap/zaptest"
)

func TestManagerStartStop(t *testing.T) {
	cfg := Config{
		OutputDir: t.TempDir(),
		RuleSets: []RuleSetConfig{{
			Name:       "ads",
			Blacklists: []source.Config{{Name: "list", URLs: []string{serveText(t, "ads.example.com\n")}}},
		}},
	}
	b, err := NewBuilder(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	m := NewManager(b, time.Hour, zaptest.NewLogger(t))
	if err := m.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.Builder().LastReport() == nil {
		t.Error("LastReport() = nil after Start")
	}
	if err := m.Stop(); err != nil {
		t.Fatal(err)
	}
}

func TestManagerStartFailure(t *testing.T) {
	cfg := Config{
		OutputDir: t.TempDir(),
		RuleSets: []RuleSetConfig{{
			Name: "ads",
			Blacklists: []source.Config{{
				Name:    "broken",
				URLs:    []string{"http://127.0.0.1:1/list.txt"},
				Retries: -1,
			}},
		}},
	}
	b, err := NewBuilder(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	m := NewManager(b, 0, zaptest.NewLogger(t))
	if err := m.Start(context.Background()); err == nil {
		t.Fatal("Start succeeded with an unreachable source")
	}
	if err := m.Stop(); err != nil {
		t.Fatal(err)
	}
}
