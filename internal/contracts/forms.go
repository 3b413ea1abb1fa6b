package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"portfolio-service/internal/core/domain"
	"portfolio-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PropertyFormSchema - путь схемы формы внутри schemas.SchemasFS.
const PropertyFormSchema = "forms/property-form/v1.json"

// FormValidator проверяет формы диалогов по встроенной JSON-схеме.
// Проверяется только наличие обязательных полей и допустимые значения
// для type и occupied.
type FormValidator struct {
	schema *jsonschema.Schema
}

// NewFormValidator компилирует схему формы.
func NewFormValidator() (*FormValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	err := fs.WalkDir(schemas.SchemasFS, "forms", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemas.SchemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking form schemas: %w", err)
	}

	schema, err := compiler.Compile(PropertyFormSchema)
	if err != nil {
		return nil, fmt.Errorf("could not compile schema %s: %w", PropertyFormSchema, err)
	}

	return &FormValidator{schema: schema}, nil
}

// FormError перечисляет поля, не прошедшие проверку.
type FormError struct {
	Fields []string
}

func (e *FormError) Error() string {
	if len(e.Fields) == 0 {
		return "Please fill in all required fields"
	}
	return "Please fill in all required fields: " + strings.Join(e.Fields, ", ")
}

// ValidateForm нормализует регистр перечислений ("house" -> "House") и проверяет форму.
func (v *FormValidator) ValidateForm(form domain.PropertyForm) (domain.PropertyForm, error) {
	form.Type = normalizeEnum(form.Type)
	form.Occupied = normalizeEnum(form.Occupied)

	// схема работает с обобщенным JSON-значением
	raw, err := json.Marshal(form)
	if err != nil {
		return form, fmt.Errorf("failed to marshal form: %w", err)
	}
	var instance interface{}
	if err := json.Unmarshal(raw, &instance); err != nil {
		return form, fmt.Errorf("failed to unmarshal form: %w", err)
	}

	if err := v.schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return form, &FormError{Fields: invalidFields(ve)}
		}
		return form, err
	}
	return form, nil
}

// Caser хранит состояние, поэтому создается на каждый вызов.
func normalizeEnum(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	return cases.Title(language.English).String(value)
}

// invalidFields собирает имена полей из листовых ошибок схемы.
func invalidFields(ve *jsonschema.ValidationError) []string {
	var fields []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			field := strings.TrimPrefix(e.InstanceLocation, "/")
			if field == "" {
				field = missingFromMessage(e.Message)
			}
			if field != "" && !slices.Contains(fields, field) {
				fields = append(fields, field)
			}
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	slices.Sort(fields)
	return fields
}

// missingFromMessage достает имена из сообщения вида "missing properties: 'address', 'type'".
func missingFromMessage(msg string) string {
	_, list, ok := strings.Cut(msg, "missing properties:")
	if !ok {
		return ""
	}
	names := strings.Split(list, ",")
	for i, n := range names {
		names[i] = strings.Trim(strings.TrimSpace(n), "'")
	}
	return strings.Join(names, ", ")
}
