package api

import (
	"strings"
	"testing"
	"time"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	if codec.Name() != "json" {
		t.Errorf("Name() = %s, want json", codec.Name())
	}

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	data, err := codec.Marshal(&AppendExpenseRequest{Description: "Pizza", Amount: 30, GroupID: "group-1", Date: &date})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, want := range []string{`"group_id":"group-1"`, `"date":"2024-05-01T00:00:00Z"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded %s, missing %s", data, want)
		}
	}
	if strings.Contains(string(data), "participant_ids") {
		t.Errorf("empty participants should be omitted: %s", data)
	}

	var decoded AppendExpenseRequest
	if err := codec.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.GroupID != "group-1" || decoded.Date == nil || !decoded.Date.Equal(date) {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestJSONCodec_EmptyBody(t *testing.T) {
	var req ListGroupsRequest
	if err := (JSONCodec{}).Unmarshal(nil, &req); err != nil {
		t.Errorf("empty body should decode to the zero message, got %v", err)
	}
	if err := (JSONCodec{}).Unmarshal([]byte("{"), &req); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestProcedures(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{AuthServiceLoginProcedure, "/splitsense.v1.AuthService/Login"},
		{LedgerServiceAppendExpenseProcedure, "/splitsense.v1.LedgerService/AppendExpense"},
		{AnalyticsServiceGetGroupHealthProcedure, "/splitsense.v1.AnalyticsService/GetGroupHealth"},
		{AssistantServiceAskProcedure, "/splitsense.v1.AssistantService/Ask"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("procedure = %s, want %s", tt.got, tt.want)
		}
	}
}
