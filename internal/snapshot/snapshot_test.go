package snapshot

import (
	"bytes"
	"testing"

	"github.com/strobel-go/ctrlflow/internal/ast"
	"github.com/strobel-go/ctrlflow/internal/snapshotfs"
)

func TestCheckCompatible(t *testing.T) {
	cases := []struct {
		name     string
		producer string
		wantErr  bool
	}{
		{"same version", SchemaVersion, false},
		{"same version written out", "1.0.0", false},
		{"newer minor same major", "1.9.0", true},
		{"different major", "2.0.0", true},
		{"malformed", "not-a-version", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckCompatible(c.producer)
			if (err != nil) != c.wantErr {
				t.Fatalf("CheckCompatible(%q) error = %v, wantErr %v", c.producer, err, c.wantErr)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	label := ast.NewLabel("L0")

	root := ast.NewBlock(
		ast.NewExpression("print", ast.NewExpression("x")),
		ast.NewGoto(label),
		label,
		ast.NewExpression("print", ast.NewExpression("y")),
	)

	var buf bytes.Buffer
	if err := Save(&buf, root); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(got.Body) != len(root.Body) {
		t.Fatalf("body length = %d, want %d", len(got.Body), len(root.Body))
	}

	gotGoto, ok := got.Body[1].(*ast.Expression)
	if !ok || gotGoto.Code != ast.CodeGoto {
		t.Fatalf("Body[1] = %#v, want a Goto expression", got.Body[1])
	}

	gotLabel, ok := got.Body[2].(*ast.Label)
	if !ok {
		t.Fatalf("Body[2] = %#v, want a Label", got.Body[2])
	}

	target, ok := gotGoto.Operand.(*ast.Label)
	if !ok {
		t.Fatalf("goto operand = %#v, want a *ast.Label", gotGoto.Operand)
	}

	if target != gotLabel {
		t.Fatal("goto operand must be identical to the reconstructed label, not merely equal")
	}
}

func TestSaveLoadViaMemFS(t *testing.T) {
	root := ast.NewBlock(ast.NewExpression("A"), ast.NewExpression("Return"))

	mem := snapshotfs.NewMem()

	f, err := mem.Create("/snapshot.json")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := Save(f, root); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := mem.Open("/snapshot.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	got, err := Load(r)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(got.Body) != 2 {
		t.Fatalf("body length = %d, want 2", len(got.Body))
	}
}

func TestLoadRejectsUnknownMajor(t *testing.T) {
	var buf bytes.Buffer

	buf.WriteString(`{"schema_version":"9.0.0","producer":"test","root":{"id":0,"type":"Block","body":[]}}`)

	if _, err := Load(&buf); err == nil {
		t.Fatal("Load: want error for an unsupported major schema version")
	}
}
