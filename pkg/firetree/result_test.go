package firetree

import (
	"net/http"
	"testing"
)

func TestResultIsErrorBoundary(t *testing.T) {
	if (&Result{StatusCode: http.StatusOK}).IsError() {
		t.Fatalf("200 flagged as error")
	}
	if (&Result{StatusCode: 399}).IsError() {
		t.Fatalf("399 flagged as error")
	}
	if !(&Result{StatusCode: http.StatusBadRequest}).IsError() {
		t.Fatalf("400 not flagged as error")
	}
	if !(&Result{StatusCode: http.StatusInternalServerError}).IsError() {
		t.Fatalf("500 not flagged as error")
	}
}

func TestResultDecode(t *testing.T) {
	res := &Result{Body: []byte(`{"name":"Ann","age":31}`)}
	var out struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	if err := res.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Name != "Ann" || out.Age != 31 {
		t.Fatalf("unexpected decode result: %+v", out)
	}
}
