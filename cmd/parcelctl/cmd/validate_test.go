package cmd_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gunvolt24/parcel_product/cmd/parcelctl/cmd"
)

const (
	catalogJSON = `[{"code":1,"name":"Notebook","value":3500},{"code":2,"name":"Pen","value":1.5}]`
	okRequest   = `{"product":{"code":"2","name":"Pen","value":"1.5"},"paymentCondition":{"entryValue":0,"parcelsQuantity":1}}`
	badRequest  = `{"product":{"code":3,"name":"Cup","value":1},"paymentCondition":{"entryValue":0,"parcelsQuantity":1}}`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func run(args ...string) (stdout, stderr string, err error) {
	root := cmd.NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestValidate_AllAccepted(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "products.json", catalogJSON)
	input := writeFile(t, dir, "requests.jsonl", okRequest+"\n")

	stdout, stderr, err := run("validate", "--catalog", catalog, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, `"status":"accepted"`) {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "catalog: 2 products; 1 accepted / 0 rejected / 0 faulted") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestValidate_RejectedExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "products.json", catalogJSON)
	input := writeFile(t, dir, "requests.json", "["+okRequest+","+badRequest+"]")

	stdout, _, err := run("validate", "-c", catalog, "--format", "json", input)
	if !errors.Is(err, cmd.ErrNotAllAccepted) {
		t.Fatalf("want ErrNotAllAccepted, got %v", err)
	}
	if !strings.Contains(stdout, `"error":"not_found"`) {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestValidate_RequiresCatalog(t *testing.T) {
	if _, _, err := run("validate", "x.jsonl"); err == nil {
		t.Fatalf("want error without --catalog")
	}
}

func TestValidate_BadFormat(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "products.json", catalogJSON)
	if _, _, err := run("validate", "-c", catalog, "-f", "xml", "in.xml"); err == nil {
		t.Fatalf("want error for unsupported format")
	}
}
