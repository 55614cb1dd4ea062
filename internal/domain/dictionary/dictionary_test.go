package dictionary

import "testing"

func TestNew(t *testing.T) {
	r := New("casa", "construção para morar", []string{"lar", "moradia", "residência"})

	if r.Word() != "casa" {
		t.Errorf("Word = %q", r.Word())
	}
	if r.Meaning() != "construção para morar" {
		t.Errorf("Meaning = %q", r.Meaning())
	}
	syn := r.Synonyms()
	want := []string{"lar", "moradia", "residência"}
	if len(syn) != len(want) {
		t.Fatalf("Synonyms = %v, want %v", syn, want)
	}
	for i := range want {
		if syn[i] != want[i] {
			t.Errorf("Synonyms[%d] = %q, want %q (order is relevance order)", i, syn[i], want[i])
		}
	}
	if r.IsNotFound() {
		t.Error("IsNotFound = true for a regular result")
	}
}

func TestNotFound(t *testing.T) {
	r := NotFound("casa")

	if r.Word() != "casa" {
		t.Errorf("Word = %q, want the original input", r.Word())
	}
	if r.Meaning() != "Não foi possível encontrar a definição." {
		t.Errorf("Meaning = %q", r.Meaning())
	}
	if len(r.Synonyms()) != 0 {
		t.Errorf("Synonyms = %v, want empty", r.Synonyms())
	}
	if !r.IsNotFound() {
		t.Error("IsNotFound = false for the fallback result")
	}
}

func TestSynonyms_Copied(t *testing.T) {
	src := []string{"lar"}
	r := New("casa", "m", src)

	src[0] = "mutated"
	if r.Synonyms()[0] != "lar" {
		t.Error("result shares backing array with caller slice")
	}

	out := r.Synonyms()
	out[0] = "mutated"
	if r.Synonyms()[0] != "lar" {
		t.Error("returned slice aliases internal state")
	}
}
