package internal

type lumenClass struct {
	name          string
	superclass    *lumenClass
	methods       map[string]method
	staticMethods map[string]method

	// alloc builds the receiver for native classes with extra state
	alloc func(exec *exec, class *lumenClass) Value
}

func newClass(name string, superclass *lumenClass) *lumenClass {
	return &lumenClass{
		name:          name,
		superclass:    superclass,
		methods:       make(map[string]method),
		staticMethods: make(map[string]method),
	}
}

func (c *lumenClass) typeName() string { return "class" }

func (c *lumenClass) findMethod(name string) method {
	for class := c; class != nil; class = class.superclass {
		if method, ok := class.methods[name]; ok {
			return method
		}
	}
	return nil
}

func (c *lumenClass) getStaticMethod(name string) method {
	for class := c; class != nil; class = class.superclass {
		if method, ok := class.staticMethods[name]; ok {
			return method
		}
	}
	return nil
}

// newObject allocates an instance of c using the nearest native allocator
// up the class chain
func (c *lumenClass) newObject(exec *exec) Value {
	for class := c; class != nil; class = class.superclass {
		if class.alloc != nil {
			return class.alloc(exec, c)
		}
	}
	return &lumenInstance{class: c, fields: make(map[string]Value)}
}

func (c *lumenClass) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

func (c *lumenClass) call(exec *exec, arguments []Value) (Value, error) {
	obj := c.newObject(exec)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(obj).call(exec, arguments); err != nil {
			return nil, err
		}
	}
	return obj, nil
}
