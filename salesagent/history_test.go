package salesagent

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
)

func sampleHistory() []ChatMessage {
	return []ChatMessage{
		{Role: RoleAssistant, Text: "oi Carlos! vi seu cadastro"},
		{Role: RoleUser, Text: "oi"},
		{Role: RoleAssistant, Text: "tudo bem?"},
		{Role: RoleAssistant, Text: "posso te fazer umas perguntas?"},
		{Role: RoleUser, Text: "pode"},
		{Role: RoleUser, Text: "  "},
		{Role: RoleAssistant, Text: "qual sua conta de luz?"},
		{Role: RoleUser, Text: "uns 400"},
	}
}

func TestGroupTurns_OpenerAndLeadLedTurns(t *testing.T) {
	t.Parallel()

	turns := GroupTurns(sampleHistory())
	if len(turns) != 5 {
		t.Fatalf("turns=%d", len(turns))
	}
	if turns[0].LeadText != "" || turns[0].AgentText != "oi Carlos! vi seu cadastro" {
		t.Fatalf("opener=%+v", turns[0])
	}
	if turns[1].LeadText != "oi" || turns[1].AgentText != "tudo bem?\nposso te fazer umas perguntas?" {
		t.Fatalf("turn1=%+v", turns[1])
	}
	if turns[1].StartMessage != 1 || turns[1].EndMessage != 3 {
		t.Fatalf("turn1 range=%d..%d", turns[1].StartMessage, turns[1].EndMessage)
	}
	if turns[3].LeadText != "" || turns[3].AgentText != "qual sua conta de luz?" {
		t.Fatalf("blank lead message turn=%+v", turns[3])
	}
	if turns[4].LeadText != "uns 400" || turns[4].EndMessage != 7 {
		t.Fatalf("last=%+v", turns[4])
	}

	if got := GroupTurns(nil); got != nil {
		t.Fatalf("nil history=%v", got)
	}
	leadFirst := GroupTurns([]ChatMessage{{Role: RoleUser, Text: "oi"}, {Role: RoleAssistant, Text: "olá"}})
	if len(leadFirst) != 1 || leadFirst[0].Index != 0 {
		t.Fatalf("lead-first=%+v", leadFirst)
	}
}

func TestCountTurns(t *testing.T) {
	t.Parallel()

	if got := CountTurns(sampleHistory()); got != 4 {
		t.Fatalf("CountTurns=%d", got)
	}
	if got := CountTurns(nil); got != 0 {
		t.Fatalf("CountTurns(nil)=%d", got)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	got := BuildUserPrompt(sampleHistory(), "  quanto fica?  ", 3)
	want := "<conversation_history>\nLEAD: pode\nAGENT: qual sua conta de luz?\nLEAD: uns 400\n</conversation_history>\n\n<new_message>\nquanto fica?\n</new_message>"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	if got := BuildUserPrompt(nil, "oi", 0); got != "<new_message>\noi\n</new_message>" {
		t.Fatalf("no history=%q", got)
	}
	if full := BuildUserPrompt(sampleHistory(), "x", 0); !strings.Contains(full, "AGENT: oi Carlos! vi seu cadastro") {
		t.Fatalf("maxTurns=0 should keep everything")
	}
}

func TestNormalizeObjections(t *testing.T) {
	t.Parallel()

	in := []Objection{
		{Trigger: "Tá caro", Response: "Parcelamos em 12x."},
		{Trigger: "vou pensar", Response: "Claro! O que pesa mais na decisão?"},
		{Trigger: "  tá   CARO ", Response: "Parcelamos em 12x sem juros no cartão."},
		{Trigger: "sem tempo", Response: ""},
	}
	got := NormalizeObjections(in)
	if len(got) != 2 {
		t.Fatalf("got=%+v", got)
	}
	if got[0].Trigger != "Tá caro" || got[0].Response != "Parcelamos em 12x sem juros no cartão." {
		t.Fatalf("merged=%+v", got[0])
	}
	if got[1].Trigger != "vou pensar" {
		t.Fatalf("order=%+v", got)
	}
}

func TestTurnRecord_AppendJSONL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "turns.jsonl")
	reply := AIReply{
		Response:       "te mando o link",
		ReadyToClose:   true,
		SentimentScore: 0.9,
		CRMActions:     []CRMAction{{Action: ActionUpdateStatus, Value: "WON"}},
	}
	pad := emotion.Vector{Pleasure: 0.85, Arousal: 0.5, Dominance: 0.5}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))

	for i := 1; i <= 2; i++ {
		rec := BuildTurnRecord(TurnInput{
			TurnID:       "turn-" + string(rune('0'+i)),
			LeadKey:      emotion.Key("lead-1", "agent-1"),
			Turn:         i,
			Inbound:      " quero fechar ",
			Reply:        reply,
			PAD:          pad,
			SlotsUpdated: []string{"budget", "Budget", " "},
			At:           at,
		})
		if err := AppendTurnRecord(path, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var recs []TurnRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec TurnRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		recs = append(recs, rec)
	}
	if len(recs) != 2 {
		t.Fatalf("records=%d", len(recs))
	}
	r := recs[1]
	if r.TurnID != "turn-2" || r.Turn != 2 || r.Inbound != "quero fechar" {
		t.Fatalf("rec=%+v", r)
	}
	if r.CreatedAt != "2026-03-01T15:00:00Z" {
		t.Fatalf("created_at=%q", r.CreatedAt)
	}
	if r.PADLabel != pad.Label() || r.PADLabel == "neutral" {
		t.Fatalf("pad_label=%q", r.PADLabel)
	}
	if len(r.SlotsUpdated) != 1 || r.SlotsUpdated[0] != "budget" {
		t.Fatalf("slots_updated=%v", r.SlotsUpdated)
	}
	if !r.ReadyToClose || len(r.CRMActions) != 1 {
		t.Fatalf("reply fields lost: %+v", r)
	}
}
