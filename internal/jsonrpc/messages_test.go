package jsonrpc

import (
	"encoding/json"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"string id", `"abc-1"`, `"abc-1"`},
		{"integer id", `42`, `42`},
		{"float id", `1.5`, `1.5`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var id RequestID
			if err := json.Unmarshal([]byte(tc.raw), &id); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.raw, err)
			}
			got, err := json.Marshal(&id)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("round trip: want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestRequestIDRejectsNonScalar(t *testing.T) {
	var id RequestID
	if err := json.Unmarshal([]byte(`{"a":1}`), &id); err == nil {
		t.Fatal("expected error for object ID")
	}
	if err := json.Unmarshal([]byte(`[1]`), &id); err == nil {
		t.Fatal("expected error for array ID")
	}
}

func TestValidateEnvelope(t *testing.T) {
	cases := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid", Request{JSONRPCVersion: "2.0", Method: "ping"}, false},
		{"wrong version", Request{JSONRPCVersion: "1.0", Method: "ping"}, true},
		{"missing version", Request{Method: "ping"}, true},
		{"missing method", Request{JSONRPCVersion: "2.0"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.ValidateEnvelope()
			if gotErr := err != nil; gotErr != tc.wantErr {
				t.Errorf("ValidateEnvelope: want err=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestIsNotification(t *testing.T) {
	req := Request{JSONRPCVersion: "2.0", Method: "notifications/initialized"}
	if !req.IsNotification() {
		t.Error("request without ID should be a notification")
	}
	req.ID = NewRequestID(7)
	if req.IsNotification() {
		t.Error("request with ID should not be a notification")
	}
}

func TestResponseExclusivity(t *testing.T) {
	res, err := NewResultResponse(NewRequestID("r1"), map[string]string{"ok": "yes"})
	if err != nil {
		t.Fatalf("NewResultResponse: %v", err)
	}
	if res.Error != nil {
		t.Error("result response must not carry an error")
	}

	errRes := NewErrorResponse(NewRequestID("r2"), ErrorCodeMethodNotFound, "nope", nil)
	if errRes.Result != nil {
		t.Error("error response must not carry a result")
	}
	if errRes.Error.Code != ErrorCodeMethodNotFound {
		t.Errorf("want code %d, got %d", ErrorCodeMethodNotFound, errRes.Error.Code)
	}
}

func TestErrorResponseWithUnknownIDEmitsNull(t *testing.T) {
	// When a request's ID cannot be determined the response must carry
	// "id": null, not omit the member.
	res := NewErrorResponse(nil, ErrorCodeParseError, "parse error", nil)
	body, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatal(err)
	}
	idRaw, ok := raw["id"]
	if !ok {
		t.Fatalf("response %s is missing the id member", body)
	}
	if string(idRaw) != "null" {
		t.Errorf("id = %s, want null", idRaw)
	}
}
