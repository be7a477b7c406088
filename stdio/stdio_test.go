package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/openassistants/assistants-mcp-go/internal/jsonrpc"
)

// echoHandler responds to "ping" and treats everything else as unknown.
type echoHandler struct{}

func (echoHandler) Handle(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	if req.IsNotification() {
		return nil
	}
	if req.Method == "ping" {
		resp, _ := jsonrpc.NewResultResponse(req.ID, struct{}{})
		return resp
	}
	return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeMethodNotFound, "method not found", nil)
}

func run(t *testing.T, input string) []jsonrpc.Response {
	t.Helper()
	var out bytes.Buffer
	s := New(echoHandler{}, WithIO(strings.NewReader(input), &out))
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var responses []jsonrpc.Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp jsonrpc.Response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("output line is not a JSON response: %q", scanner.Text())
		}
		responses = append(responses, resp)
	}
	return responses
}

func TestServesOneResponsePerRequest(t *testing.T) {
	responses := run(t, `{"jsonrpc":"2.0","id":1,"method":"ping"}
{"jsonrpc":"2.0","id":2,"method":"ping"}
`)
	if len(responses) != 2 {
		t.Fatalf("want 2 responses, got %d", len(responses))
	}
	for i, resp := range responses {
		if resp.Error != nil {
			t.Errorf("response %d: unexpected error %v", i, resp.Error)
		}
		if resp.ID.String() != map[int]string{0: "1", 1: "2"}[i] {
			t.Errorf("response %d echoes id %q", i, resp.ID.String())
		}
	}
}

func TestParseErrorDoesNotKillTheStream(t *testing.T) {
	responses := run(t, `this is not json
{"jsonrpc":"2.0","id":7,"method":"ping"}
`)
	if len(responses) != 2 {
		t.Fatalf("want parse error + pong, got %d responses", len(responses))
	}
	if responses[0].Error == nil || responses[0].Error.Code != jsonrpc.ErrorCodeParseError {
		t.Errorf("first response = %+v, want parse error", responses[0].Error)
	}
	if responses[1].Error != nil {
		t.Errorf("stream should continue after a parse error: %+v", responses[1].Error)
	}
}

func TestParseErrorResponseCarriesNullID(t *testing.T) {
	var out bytes.Buffer
	s := New(echoHandler{}, WithIO(strings.NewReader("garbage\n"), &out))
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(out.Bytes(), &raw); err != nil {
		t.Fatalf("output is not a JSON object: %q", out.String())
	}
	idRaw, ok := raw["id"]
	if !ok {
		t.Fatalf("parse-error response %s is missing the id member", out.Bytes())
	}
	if string(idRaw) != "null" {
		t.Errorf("id = %s, want null", idRaw)
	}
}

func TestNotificationsProduceNoOutput(t *testing.T) {
	responses := run(t, `{"jsonrpc":"2.0","method":"notifications/initialized"}
`)
	if len(responses) != 0 {
		t.Errorf("notifications must not be answered, got %d responses", len(responses))
	}
}

func TestBlankLinesIgnored(t *testing.T) {
	responses := run(t, "\n\n"+`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n\n")
	if len(responses) != 1 {
		t.Errorf("want 1 response, got %d", len(responses))
	}
}
