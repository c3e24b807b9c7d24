// Package render prints value trees in text formats.
package render

import (
	"encoding/base64"
	"io"
	"math"
	"strconv"

	"github.com/chaisql/bjdata/types"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format is a text output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return f, nil
	}

	return "", errors.Errorf("unknown output format %q", s)
}

// Write prints v in the given format.
func Write(w io.Writer, f Format, v types.Value) error {
	if f == FormatYAML {
		return YAML(w, v)
	}
	return JSON(w, v)
}

// JSON writes v as JSON followed by a newline.
func JSON(w io.Writer, v types.Value) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))
	return err
}

// YAML writes v as a YAML document. Object keys keep their order.
func YAML(w io.Writer, v types.Value) error {
	n, err := yamlNode(v)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return errors.Wrap(err, "failed to encode yaml")
	}
	return enc.Close()
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlNode(v types.Value) (*yaml.Node, error) {
	switch v.Type() {
	case types.TypeNull:
		return scalar("!!null", "null"), nil
	case types.TypeBoolean:
		return scalar("!!bool", v.String()), nil
	case types.TypeInteger, types.TypeUnsigned:
		return scalar("!!int", v.String()), nil
	case types.TypeDouble:
		f := types.AsFloat64(v)
		switch {
		case math.IsNaN(f):
			return scalar("!!float", ".nan"), nil
		case math.IsInf(f, 1):
			return scalar("!!float", ".inf"), nil
		case math.IsInf(f, -1):
			return scalar("!!float", "-.inf"), nil
		}
		return scalar("!!float", strconv.FormatFloat(f, 'g', -1, 64)), nil
	case types.TypeText:
		return scalar("!!str", types.AsString(v)), nil
	case types.TypeBlob:
		return scalar("!!binary", base64.StdEncoding.EncodeToString(types.AsByteSlice(v))), nil
	case types.TypeArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, x := range types.AsArray(v).Values() {
			c, err := yamlNode(x)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case types.TypeObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		err := types.AsObject(v).Iterate(func(k string, x types.Value) error {
			c, err := yamlNode(x)
			if err != nil {
				return err
			}
			n.Content = append(n.Content, scalar("!!str", k), c)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return n, nil
	}

	return nil, errors.Newf("cannot render a %s value", v.Type())
}
