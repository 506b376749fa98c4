package module

import "reflect"

// PortSet is whatever a module returns from Ports, usually a struct of interfaces it defines
type PortSet = any

// PortsOf finds a T in m's ports: the ports value itself, or the first exported struct field that is one
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if t, ok := p.(T); ok {
		return t, true
	}

	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Struct {
		return zero, false
	}
	for _, f := range reflect.VisibleFields(v.Type()) {
		if !f.IsExported() {
			continue
		}
		if t, ok := v.FieldByIndex(f.Index).Interface().(T); ok {
			return t, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for boot wiring, it panics naming the module when T is missing
func MustPortsOf[T any](m Module) T {
	t, ok := PortsOf[T](m)
	if !ok {
		panic("module: requested port not found on module " + m.Name())
	}
	return t
}
