package problem

import (
	"strconv"

	"github.com/cottand/coeffects/frontend/ir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// resolve follows aliases, so anchors can be used to share types between constraints
func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func errorAt(node *yaml.Node, format string, args ...any) error {
	return errors.Errorf("line %d: "+format, append([]any{node.Line}, args...)...)
}

// singleKey returns the key and value of a mapping with exactly one entry
func singleKey(node *yaml.Node) (string, *yaml.Node, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", nil, errorAt(node, "expected a mapping with a single key")
	}
	return node.Content[0].Value, resolve(node.Content[1]), nil
}

// field returns the value of key in a mapping node
func field(node *yaml.Node, key string) (*yaml.Node, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errorAt(node, "expected a mapping with key '%s'", key)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return resolve(node.Content[i+1]), nil
		}
	}
	return nil, errorAt(node, "missing key '%s'", key)
}

func pairOf(node *yaml.Node) (*yaml.Node, *yaml.Node, error) {
	node = resolve(node)
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return nil, nil, errorAt(node, "expected a list of two elements")
	}
	return resolve(node.Content[0]), resolve(node.Content[1]), nil
}

func decodeConstraint(node *yaml.Node) (ir.TypeConstraint, error) {
	l, r, err := pairOf(node)
	if err != nil {
		return ir.TypeConstraint{}, err
	}
	left, err := decodeType(l)
	if err != nil {
		return ir.TypeConstraint{}, err
	}
	right, err := decodeType(r)
	if err != nil {
		return ir.TypeConstraint{}, err
	}
	return ir.TypeConstraint{Left: left, Right: right}, nil
}

// decodeType reads a type, where a plain string is a primitive type and
// every other type is a mapping with a single key naming its kind
func decodeType(node *yaml.Node) (ir.Type, error) {
	node = resolve(node)
	if node.Kind == yaml.ScalarNode {
		if node.Value == "" {
			return nil, errorAt(node, "empty type")
		}
		return &ir.Primitive{Name: node.Value}, nil
	}
	kind, value, err := singleKey(node)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "var":
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return nil, errorAt(value, "expected a type variable name")
		}
		return &ir.TypeVar{Name: value.Value}, nil

	case "tuple":
		if value.Kind != yaml.SequenceNode {
			return nil, errorAt(value, "expected a list of types")
		}
		elems := make([]ir.Type, 0, len(value.Content))
		for _, elemNode := range value.Content {
			elem, err := decodeType(elemNode)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return &ir.Tuple{Elems: elems}, nil

	case "func":
		argNode, err := field(value, "arg")
		if err != nil {
			return nil, err
		}
		resultNode, err := field(value, "result")
		if err != nil {
			return nil, err
		}
		coeffectsNode, err := field(value, "coeffects")
		if err != nil {
			return nil, err
		}
		arg, err := decodeType(argNode)
		if err != nil {
			return nil, err
		}
		result, err := decodeType(resultNode)
		if err != nil {
			return nil, err
		}
		declNode, callNode, err := pairOf(coeffectsNode)
		if err != nil {
			return nil, err
		}
		decl, err := decodeCoeffect(declNode)
		if err != nil {
			return nil, err
		}
		call, err := decodeCoeffect(callNode)
		if err != nil {
			return nil, err
		}
		return &ir.FnType{Coeffects: ir.CoeffectPair{Decl: decl, Call: call}, Arg: arg, Result: result}, nil

	case "comonad":
		coeffectNode, err := field(value, "coeffect")
		if err != nil {
			return nil, err
		}
		innerNode, err := field(value, "inner")
		if err != nil {
			return nil, err
		}
		c, err := decodeCoeffect(coeffectNode)
		if err != nil {
			return nil, err
		}
		inner, err := decodeType(innerNode)
		if err != nil {
			return nil, err
		}
		return &ir.Comonad{Coeffect: c, Inner: inner}, nil
	}
	return nil, errorAt(node, "unknown type kind '%s'", kind)
}

// decodeCoeffect reads a coeffect: use, ignore and none are plain strings,
// every other coeffect is a mapping with a single key naming its kind
func decodeCoeffect(node *yaml.Node) (ir.Coeffect, error) {
	node = resolve(node)
	if node.Kind == yaml.ScalarNode {
		switch node.Value {
		case "use":
			return &ir.Use{}, nil
		case "ignore":
			return &ir.Ignore{}, nil
		case "none":
			return &ir.NoCoeffect{}, nil
		}
		return nil, errorAt(node, "unknown coeffect '%s'", node.Value)
	}
	kind, value, err := singleKey(node)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "var":
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return nil, errorAt(value, "expected a coeffect variable name")
		}
		return &ir.CoeffectVar{Name: value.Value}, nil

	case "past":
		n, err := strconv.ParseUint(value.Value, 10, 0)
		if err != nil || value.Kind != yaml.ScalarNode {
			return nil, errorAt(value, "expected a natural number of past steps")
		}
		return &ir.Past{N: uint(n)}, nil

	case "param":
		if value.Kind == yaml.ScalarNode {
			return &ir.ImplicitParam{Name: value.Value}, nil
		}
		nameNode, err := field(value, "name")
		if err != nil {
			return nil, err
		}
		typeNode, err := field(value, "type")
		if err != nil {
			return nil, err
		}
		t, err := decodeType(typeNode)
		if err != nil {
			return nil, err
		}
		return &ir.ImplicitParam{Name: nameNode.Value, Type: t}, nil

	case "merge", "split", "seq":
		l, r, err := pairOf(value)
		if err != nil {
			return nil, err
		}
		left, err := decodeCoeffect(l)
		if err != nil {
			return nil, err
		}
		right, err := decodeCoeffect(r)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "merge":
			return &ir.Merge{Left: left, Right: right}, nil
		case "split":
			return &ir.Split{Left: left, Right: right}, nil
		default:
			return &ir.Seq{Left: left, Right: right}, nil
		}
	}
	return nil, errorAt(node, "unknown coeffect kind '%s'", kind)
}
