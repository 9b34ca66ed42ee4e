package cfqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("acct-1", "queue-1", "token-1", WithBaseURL(server.URL))
}

func TestPullParsesMessages(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq pullRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{
			"result": {
				"messages": [
					{
						"id": "m-1",
						"lease_id": "lease-1",
						"body": {"key": "inbound/levine/a.eml", "route_tag": "levine"}
					},
					{
						"message_id": "m-2",
						"lease_id": "lease-2",
						"body": "{\"key\": \"inbound/general/b.eml\"}"
					},
					{
						"id": "m-3",
						"lease_id": "",
						"body": {"key": "inbound/general/c.eml"}
					}
				]
			}
		}`)
	})

	messages, err := client.Pull(context.Background(), 5, 120)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}

	if gotPath != "/accounts/acct-1/queues/queue-1/messages/pull" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer token-1" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotReq.BatchSize != 5 || gotReq.VisibilityTimeout != 120 {
		t.Fatalf("request = %#v", gotReq)
	}

	if len(messages) != 2 {
		t.Fatalf("messages = %#v", messages)
	}
	if messages[0].ID != "m-1" || messages[0].Key != "inbound/levine/a.eml" || messages[0].RouteTag != "levine" {
		t.Fatalf("first message = %#v", messages[0])
	}
	if messages[1].ID != "m-2" || messages[1].Key != "inbound/general/b.eml" || messages[1].RouteTag != "" {
		t.Fatalf("second message = %#v", messages[1])
	}
}

func TestPullEmptyQueue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result": {"messages": []}}`)
	})

	messages, err := client.Pull(context.Background(), 5, 120)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("messages = %#v", messages)
	}
}

func TestPullSurfacesHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such queue", http.StatusNotFound)
	})

	if _, err := client.Pull(context.Background(), 5, 120); err == nil {
		t.Fatal("expected error")
	}
}

func TestAckSendsLeases(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Acks []struct {
			ID      string `json:"id"`
			LeaseID string `json:"lease_id"`
		} `json:"acks"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"success": true}`)
	})

	err := client.Ack(context.Background(), []Message{
		{ID: "m-1", LeaseID: "lease-1"},
		{ID: "m-2", LeaseID: "lease-2"},
	})
	if err != nil {
		t.Fatalf("Ack failed: %v", err)
	}

	if gotPath != "/accounts/acct-1/queues/queue-1/messages/ack" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(gotBody.Acks) != 2 || gotBody.Acks[0].ID != "m-1" || gotBody.Acks[1].LeaseID != "lease-2" {
		t.Fatalf("acks = %#v", gotBody.Acks)
	}
}

func TestAckNothingIsNoop(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if err := client.Ack(context.Background(), nil); err != nil {
		t.Fatalf("Ack failed: %v", err)
	}
	if called {
		t.Fatal("no request expected")
	}
}

func TestPullRequiresCredentials(t *testing.T) {
	client := NewClient("", "", "")
	if _, err := client.Pull(context.Background(), 1, 60); err == nil {
		t.Fatal("expected credential error")
	}
}
