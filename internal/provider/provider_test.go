package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/compose"
	"github.com/starford/ansuz/internal/models"
)

type stubProvider struct {
	name  string
	reply string
	err   error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(context.Context, models.Context, models.Tone) (string, error) {
	return s.reply, s.err
}

func fixedGenerator() *compose.Generator {
	return &compose.Generator{Now: func() time.Time {
		return time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	}}
}

func TestRegistry_DefaultActive(t *testing.T) {
	r := NewRegistry(NewRulebased(fixedGenerator()))
	if r.Active() != NameRulebased {
		t.Errorf("active = %q, want %q", r.Active(), NameRulebased)
	}
	if got := r.List(); len(got) != 1 || got[0] != NameRulebased {
		t.Errorf("list = %v", got)
	}
}

func TestRegistry_ListRegistrationOrder(t *testing.T) {
	r := NewRegistry(NewRulebased(fixedGenerator()))
	r.Register(&stubProvider{name: "remote-a"})
	r.Register(&stubProvider{name: "remote-b"})

	got := r.List()
	want := []string{NameRulebased, "remote-a", "remote-b"}
	if len(got) != len(want) {
		t.Fatalf("list = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("list[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry(NewRulebased(fixedGenerator()))
	_, err := r.Get("ghost")
	if !errors.Is(err, apperr.ErrUnknownProvider) {
		t.Errorf("err = %v, want ErrUnknownProvider", err)
	}
}

func TestRegistry_UseUnknownLeavesSelection(t *testing.T) {
	r := NewRegistry(NewRulebased(fixedGenerator()))
	if err := r.Use("ghost"); !errors.Is(err, apperr.ErrUnknownProvider) {
		t.Errorf("err = %v, want ErrUnknownProvider", err)
	}
	if r.Active() != NameRulebased {
		t.Errorf("active = %q, selection should be unchanged", r.Active())
	}
}

func TestRegistry_GenerateDelegatesToActive(t *testing.T) {
	r := NewRegistry(NewRulebased(fixedGenerator()))
	r.Register(&stubProvider{name: "canned", reply: "canned reply"})

	if err := r.Use("canned"); err != nil {
		t.Fatalf("Use: %v", err)
	}
	got, err := r.Generate(context.Background(), models.Context{}, models.ToneFormal)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "canned reply" {
		t.Errorf("reply = %q", got)
	}
}

func TestRegistry_ErrorPropagatesUnmodified(t *testing.T) {
	boom := errors.New("upstream timeout")
	r := NewRegistry(NewRulebased(fixedGenerator()))
	r.Register(&stubProvider{name: "flaky", err: boom})
	_ = r.Use("flaky")

	_, err := r.Generate(context.Background(), models.Context{}, models.ToneFormal)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the provider's own error", err)
	}
}

func TestRulebased_MatchesGenerator(t *testing.T) {
	gen := fixedGenerator()
	p := NewRulebased(gen)
	ctx := models.Context{IssueSummary: "cannot login", AgentName: "Alex"}

	got, err := p.Generate(context.Background(), ctx, models.ToneFriendly)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if want := gen.Generate(ctx, models.ToneFriendly); got != want {
		t.Errorf("provider reply diverges from generator:\n%q\n%q", got, want)
	}
}

func TestOpenAI_MissingKeyIsError(t *testing.T) {
	p := NewOpenAI("", "")
	_, err := p.Generate(context.Background(), models.Context{}, models.ToneFormal)
	if err == nil {
		t.Fatal("expected error without api key")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Errorf("err = %v", err)
	}
}
