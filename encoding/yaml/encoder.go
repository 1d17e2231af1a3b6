// Package yaml marshals structured output as YAML, optionally annotating
// keys with comments taken from struct tags so the model sees the field
// descriptions inline in the example document.
package yaml

import (
	"bytes"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/effective-security/agentexec/pkg/llmutils"
	"github.com/effective-security/agentexec/pkg/schema"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type CommentStyle int

const (
	NoComment CommentStyle = iota
	HeadComment
	LineComment
	FootComment
)

type Encoder struct {
	reqType      reflect.Type
	commentStyle CommentStyle
}

func NewEncoder(req any) *Encoder {
	return &Encoder{
		reqType:      reflect.TypeOf(req),
		commentStyle: NoComment,
	}
}

func (e *Encoder) WithCommentStyle(style CommentStyle) *Encoder {
	e.commentStyle = style
	return e
}

func (e *Encoder) Marshal(v any) ([]byte, error) {
	if e.commentStyle == NoComment {
		return yaml.Marshal(v)
	}
	node, err := e.commentedNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	return yaml.Unmarshal(llmutils.BytesTrimBackticks(bs), ret)
}

func (e *Encoder) Validate(req any) error {
	return validator.New().Struct(req)
}

func (e *Encoder) GetFormatInstructions() string {
	tValue := reflect.New(e.reqType)
	instance := tValue.Interface()
	if f, ok := tValue.Elem().Interface().(schema.Faker); ok {
		instance = f.Fake()
	} else {
		_ = gofakeit.Struct(instance)
	}
	bs, err := e.Marshal(instance)
	if err != nil {
		return ""
	}
	var b bytes.Buffer
	b.WriteString("\nRespond with YAML in the following YAML schema without comments:\n")
	b.WriteString("```yaml\n")
	b.Write(bs)
	b.WriteString("```")
	b.WriteString("\nMake sure to return an instance of the YAML, not the schema itself.\n")
	return b.String()
}

// commentedNode builds a mapping node for the struct, attaching each
// field's comment in the configured position.
func (e *Encoder) commentedNode(v any) (*yaml.Node, error) {
	val := dereference(reflect.ValueOf(v))
	if !val.IsValid() {
		return nullNode(), nil
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %s", val.Kind())
	}

	typ := val.Type()
	root := &yaml.Node{Kind: yaml.MappingNode}

	for i := range val.NumField() {
		field := typ.Field(i)

		yamlKey := field.Tag.Get("yaml")
		if yamlKey == "" || yamlKey == "-" {
			continue
		}

		// the explicit comment tag wins over the jsonschema description
		comment := field.Tag.Get("comment")
		if comment == "" {
			comment = extractDescription(field.Tag.Get("jsonschema"))
		}

		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: yamlKey}
		if comment != "" {
			switch e.commentStyle {
			case HeadComment:
				keyNode.HeadComment = comment
			case LineComment:
				keyNode.LineComment = comment
			case FootComment:
				keyNode.FootComment = comment
			}
		}

		root.Content = append(root.Content, keyNode, e.valueNode(val.Field(i)))
	}

	return root, nil
}

// valueNode converts a single value, following pointers and interfaces.
func (e *Encoder) valueNode(v reflect.Value) *yaml.Node {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nullNode()
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nullNode()
		}
		v = reflect.ValueOf(v.Interface())
	}

	switch v.Kind() {
	case reflect.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.String()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", v.Int()), Tag: "!!int"}
	case reflect.Float32, reflect.Float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%f", v.Float()), Tag: "!!float"}
	case reflect.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%t", v.Bool()), Tag: "!!bool"}
	case reflect.Map:
		return e.mapNode(v)
	case reflect.Struct:
		node, _ := e.commentedNode(v.Interface())
		return node
	case reflect.Slice, reflect.Array:
		return e.seqNode(v)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%v", v.Interface())}
	}
}

func (e *Encoder) mapNode(v reflect.Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range v.MapKeys() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%v", key.Interface())},
			e.valueNode(v.MapIndex(key)))
	}
	return node
}

func (e *Encoder) seqNode(v reflect.Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for i := range v.Len() {
		node.Content = append(node.Content, e.valueNode(v.Index(i)))
	}
	return node
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: "null", Tag: "!!null"}
}

// extractDescription pulls description=... out of a jsonschema tag.
func extractDescription(tag string) string {
	re := regexp.MustCompile(`description=([^,]+)`)
	matches := re.FindStringSubmatch(tag)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}

func dereference(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
