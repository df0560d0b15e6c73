package webclient

import (
	"net/url"
	"reflect"
	"testing"
)

func TestSerializeSingleValuesStayScalar(t *testing.T) {
	values := url.Values{}
	values.Set("name", "Blue Oxford Shirt")
	values.Set("category", "tops")

	got := Serialize(values)
	if got["name"] != "Blue Oxford Shirt" || got["category"] != "tops" {
		t.Errorf("unexpected mapping: %v", got)
	}
}

func TestSerializeRepeatedNamesCollapseToList(t *testing.T) {
	values := url.Values{}
	values.Add("tags", "cotton")
	values.Add("tags", "casual")

	got := Serialize(values)
	want := []any{"cotton", "casual"}
	if !reflect.DeepEqual(got["tags"], want) {
		t.Errorf("expected ordered 2-list %v, got %v", want, got["tags"])
	}

	values.Add("tags", "summer")
	got = Serialize(values)
	want = []any{"cotton", "casual", "summer"}
	if !reflect.DeepEqual(got["tags"], want) {
		t.Errorf("expected ordered 3-list %v, got %v", want, got["tags"])
	}
}

func TestValidateMarksFormAndFields(t *testing.T) {
	values := url.Values{}
	values.Set("email", "not-an-email")
	values.Set("name", "Risvey")

	form := NewForm(values)
	form.SetRule("email", "required,email")
	form.SetRule("name", "required")

	if form.Validate() {
		t.Error("expected validation to fail on the email field")
	}
	if !form.Validated() {
		t.Error("form should carry the validated marker")
	}
	if form.FieldState("email") != FieldInvalid {
		t.Errorf("expected email invalid, got %v", form.FieldState("email"))
	}
	if form.FieldState("name") != FieldValid {
		t.Errorf("expected name valid, got %v", form.FieldState("name"))
	}
}

func TestResetValidationClearsState(t *testing.T) {
	form := NewForm(url.Values{"email": {"x"}})
	form.SetRule("email", "email")
	form.Validate()
	form.ShowFieldError("email", "Invalid")

	form.ResetValidation()

	if form.Validated() {
		t.Error("validated marker should be cleared")
	}
	if form.FieldState("email") != FieldNeutral {
		t.Errorf("expected neutral state, got %v", form.FieldState("email"))
	}
	if form.FieldError("email") != "" {
		t.Errorf("expected no feedback text, got %q", form.FieldError("email"))
	}
}

func TestFieldErrorLifecycle(t *testing.T) {
	form := NewForm(url.Values{"email": {"a@b.com"}})

	form.ShowFieldError("email", "Already registered")
	if form.FieldState("email") != FieldInvalid || form.FieldError("email") != "Already registered" {
		t.Errorf("field error not applied: %v %q", form.FieldState("email"), form.FieldError("email"))
	}

	form.ClearFieldError("email")
	if form.FieldState("email") != FieldValid {
		t.Errorf("expected valid after clear, got %v", form.FieldState("email"))
	}
	if form.FieldError("email") != "" {
		t.Errorf("feedback should be gone, got %q", form.FieldError("email"))
	}
}
