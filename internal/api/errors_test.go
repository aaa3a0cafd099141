package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status      int
		kind        Kind
		category    Category
		recoverable bool
	}{
		{500, KindAPIService, CategoryServer, true},
		{502, KindAPIService, CategoryServer, true},
		{503, KindAPIService, CategoryServer, true},
		{429, KindAPIService, CategoryServer, true},
		{400, KindAPIService, CategoryValidation, false},
		{404, KindAPIService, CategoryValidation, false},
		{422, KindAPIService, CategoryValidation, false},
		{401, KindAPIService, CategoryAuth, false},
		{403, KindAPIService, CategoryAuth, false},
		{302, KindAPIService, CategoryUnknown, false},
	}

	for _, tt := range tests {
		got := Classify(nil, tt.status, nil)
		if got.Kind != tt.kind || got.Category != tt.category {
			t.Errorf("Classify(status=%d) = %s/%s, want %s/%s",
				tt.status, got.Kind, got.Category, tt.kind, tt.category)
		}
		if IsRecoverable(got) != tt.recoverable {
			t.Errorf("Classify(status=%d) recoverable = %v, want %v",
				tt.status, IsRecoverable(got), tt.recoverable)
		}
	}
}

func TestClassifyTransportFailure(t *testing.T) {
	cause := &url.Error{Op: "Get", URL: "http://api", Err: errors.New("connection refused")}
	got := Classify(cause, 0, nil)

	if got.Kind != KindNetwork {
		t.Errorf("Kind = %s, want %s", got.Kind, KindNetwork)
	}
	if !IsRecoverable(got) {
		t.Error("transport failure should be recoverable")
	}
	if !errors.Is(got, cause) {
		t.Error("classified error should wrap its cause")
	}
}

func TestClassifyTimeout(t *testing.T) {
	var cause net.Error = &net.DNSError{Err: "timeout", IsTimeout: true}
	got := Classify(cause, 0, nil)

	if got.Kind != KindNetwork || !IsRecoverable(got) {
		t.Errorf("timeout classified as %s recoverable=%v, want network recoverable",
			got.Kind, IsRecoverable(got))
	}
}

func TestClassifyPassesThroughTypedErrors(t *testing.T) {
	original := Classify(nil, 400, []byte(`{"error":"name required"}`))
	wrapped := fmt.Errorf("list customers: %w", original)

	if got := Classify(wrapped, 0, nil); got != original {
		t.Error("already-classified error was re-wrapped")
	}
}

func TestClassifyExtractsServerMessage(t *testing.T) {
	got := Classify(nil, 400, []byte(`{"error":"Customer name and phone are required."}`))
	if got.Message != "Customer name and phone are required." {
		t.Errorf("Message = %q", got.Message)
	}
}

func TestIsRecoverableOnPlainError(t *testing.T) {
	if IsRecoverable(errors.New("boom")) {
		t.Error("unclassified error must not be recoverable")
	}
}
