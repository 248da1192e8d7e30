package internal

import "fmt"

type lumenInstance struct {
	class  *lumenClass
	fields map[string]Value
}

func (o *lumenInstance) typeName() string { return "instance" }

// instanceOf returns the field table of plain instances as well as of the
// native collections built on top of them
func instanceOf(value Value) (*lumenInstance, bool) {
	switch v := value.(type) {
	case *lumenInstance:
		return v, true
	case *lumenArray:
		return &v.lumenInstance, true
	case *lumenMap:
		return &v.lumenInstance, true
	}
	return nil, false
}

// getProperty looks up own fields first and then the method table of the
// class chain; getters are invoked right away
func (e *exec) getProperty(object Value, name *token) (Value, error) {
	if obj, ok := instanceOf(object); ok {
		if val, ok := obj.fields[name.lexeme]; ok {
			return val, nil
		}
		if method := obj.class.findMethod(name.lexeme); method != nil {
			bound := method.bind(object)
			if bound.isGetter() {
				return e.call(bound, name, nil)
			}
			return bound, nil
		}
		return nil, newRuntimeError(name, fmt.Errorf("%w: %s", errUndefinedProp, name.lexeme))
	}
	if class, ok := object.(*lumenClass); ok {
		if method := class.getStaticMethod(name.lexeme); method != nil {
			if method.isGetter() {
				return e.call(method, name, nil)
			}
			return method, nil
		}
		return nil, newRuntimeError(name, fmt.Errorf("%w: %s", errUndefinedProp, name.lexeme))
	}
	return nil, newRuntimeError(name, fmt.Errorf("%w: %s", errExpectedObject, name.lexeme))
}

func (e *exec) setProperty(object Value, name *token, value Value) error {
	obj, ok := instanceOf(object)
	if !ok {
		return newRuntimeError(name, fmt.Errorf("%w: %s", errExpectedFields, name.lexeme))
	}
	obj.fields[name.lexeme] = value
	return nil
}
