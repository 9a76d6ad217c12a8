package core

import (
	"strings"
	"testing"
)

func TestEmailMessage_Render(t *testing.T) {
	msg := &EmailMessage{
		TemplateName: "event-created",
		TemplateData: map[string]interface{}{
			"TeamID":    "81b2f38a-9902-4d4a-b4b1-2b4f2a6f8a35",
			"TeamName":  "U13 Lions",
			"Type":      "training",
			"Date":      "2026-09-01",
			"StartTime": "18:00",
			"Title":     "Pressing triggers",
		},
	}

	if err := msg.Render(); err != nil {
		t.Fatalf("Render() failed, %v", err)
	}
	if !msg.HasContent() {
		t.Fatal("Render() produced no content")
	}
	for _, want := range []string{"U13 Lions", "training", "2026-09-01", "18:00", "Pressing triggers", "Sent by Kocha"} {
		if !strings.Contains(msg.TextContent, want) {
			t.Errorf("TextContent missing %q; got:\n%s", want, msg.TextContent)
		}
		if !strings.Contains(msg.HTMLContent, want) {
			t.Errorf("HTMLContent missing %q; got:\n%s", want, msg.HTMLContent)
		}
	}
}

func TestEmailMessage_RenderBodyStr(t *testing.T) {
	msg := &EmailMessage{BodyStr: "plain content"}
	if err := msg.Render(); err != nil {
		t.Fatalf("Render() failed, %v", err)
	}
	if msg.TextContent != "plain content" {
		t.Errorf("TextContent = %q, want %q", msg.TextContent, "plain content")
	}
	if msg.HTMLContent != "" {
		t.Errorf("HTMLContent = %q, want empty", msg.HTMLContent)
	}
}
