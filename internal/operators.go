package internal

import (
	"fmt"
	"math"
)

type operatorApply func(x, y lumenNumber) (Value, error)

var numberOperations = map[tokenType]operatorApply{
	tkPlus: func(x, y lumenNumber) (Value, error) {
		return x + y, nil
	},
	tkMinus: func(x, y lumenNumber) (Value, error) {
		return x - y, nil
	},
	tkStar: func(x, y lumenNumber) (Value, error) {
		return x * y, nil
	},
	tkSlash: func(x, y lumenNumber) (Value, error) {
		return x / y, nil
	},
	tkMod: func(x, y lumenNumber) (Value, error) {
		return lumenNumber(math.Mod(float64(x), float64(y))), nil
	},
	tkPower: func(x, y lumenNumber) (Value, error) {
		if x == 0 && y < 0 {
			return nil, errZeroNegativePower
		}
		return lumenNumber(math.Pow(float64(x), float64(y))), nil
	},
	tkGreater: func(x, y lumenNumber) (Value, error) {
		return lumenBool(x > y), nil
	},
	tkGreaterEqual: func(x, y lumenNumber) (Value, error) {
		return lumenBool(x >= y), nil
	},
	tkLess: func(x, y lumenNumber) (Value, error) {
		return lumenBool(x < y), nil
	},
	tkLessEqual: func(x, y lumenNumber) (Value, error) {
		return lumenBool(x <= y), nil
	},
}

var integerOperations = map[tokenType]func(x, y int64) int64{
	tkAmpersand: func(x, y int64) int64 { return x & y },
	tkPipe:      func(x, y int64) int64 { return x | y },
	tkCaret:     func(x, y int64) int64 { return x ^ y },
}

// toInt64 converts integral numbers that fit in an int64
func toInt64(n lumenNumber, operator *token) (int64, error) {
	if !isIntegral(n) {
		return 0, newRuntimeError(operator, fmt.Errorf("%w: %s", errOnlyIntegers, operator.lexeme))
	}
	if n < math.MinInt64 || n >= -math.MinInt64 {
		return 0, newRuntimeError(operator, fmt.Errorf("%w: %s", errIntegerRange, formatNumber(n)))
	}
	return int64(n), nil
}

func (e *exec) binaryOp(operator *token, left, right Value) (Value, error) {
	switch operator.token {
	case tkEqualEqual:
		return lumenBool(isEqual(left, right)), nil
	case tkBangEqual:
		return lumenBool(!isEqual(left, right)), nil
	case tkPlus:
		if l, ok := left.(lumenString); ok {
			if r, ok := right.(lumenString); ok {
				return l + r, nil
			}
		}
		l, lok := left.(lumenNumber)
		r, rok := right.(lumenNumber)
		if !lok || !rok {
			return nil, newRuntimeError(operator, fmt.Errorf("%w: %s", errOnlyNumbersOrStrings, operator.lexeme))
		}
		return l + r, nil
	}

	if apply, ok := integerOperations[operator.token]; ok {
		l, lok := left.(lumenNumber)
		r, rok := right.(lumenNumber)
		if !lok || !rok {
			return nil, newRuntimeError(operator, fmt.Errorf("%w: %s", errOnlyIntegers, operator.lexeme))
		}
		x, err := toInt64(l, operator)
		if err != nil {
			return nil, err
		}
		y, err := toInt64(r, operator)
		if err != nil {
			return nil, err
		}
		return lumenNumber(apply(x, y)), nil
	}

	apply, ok := numberOperations[operator.token]
	if !ok {
		return nil, newRuntimeError(operator, fmt.Errorf("%w: %s", errUndefinedOp, operator.lexeme))
	}
	l, lok := left.(lumenNumber)
	r, rok := right.(lumenNumber)
	if !lok || !rok {
		return nil, newRuntimeError(operator, fmt.Errorf("%w: %s", errOnlyNumbers, operator.lexeme))
	}
	result, err := apply(l, r)
	if err != nil {
		return nil, newRuntimeError(operator, err)
	}
	return result, nil
}

func (e *exec) unaryOp(operator *token, value Value) (Value, error) {
	switch operator.token {
	case tkBang:
		return lumenBool(!truthy(value)), nil
	case tkMinus:
		n, ok := value.(lumenNumber)
		if !ok {
			return nil, newRuntimeError(operator, fmt.Errorf("%w: %s", errOnlyNumber, operator.lexeme))
		}
		return -n, nil
	case tkTilde:
		n, ok := value.(lumenNumber)
		if !ok {
			return nil, newRuntimeError(operator, fmt.Errorf("%w: %s", errOnlyIntegers, operator.lexeme))
		}
		x, err := toInt64(n, operator)
		if err != nil {
			return nil, err
		}
		return lumenNumber(^x), nil
	}
	return nil, newRuntimeError(operator, fmt.Errorf("%w: %s", errUndefinedOp, operator.lexeme))
}
