// Package ibex implements a floating-point expression calculator.
//
// Evaluation is a three-stage pipeline. Tokenize scans text into tokens,
// deciding from context whether each + or - is unary. Translate reorders the
// tokens into postfix with the shunting-yard algorithm and stamps each
// function call with its argument count. Evaluate runs the postfix sequence on
// a stack machine against caller-supplied variables and functions. No syntax
// tree is ever built.
//
// From loosest to tightest binding, the operators are ||, &&, comparisons
// (== != < <= > >=), + and -, * and /, prefix + - !, and ^. Only ^ and the
// prefix operators associate to the right, so "2^3^2" is 512 and "-2^2" is -4.
// A prefix operator directly after ^ ends the power, so a negative exponent
// needs parentheses, as in "2^(-3)".
//
// EvalString runs the whole pipeline once with the default environment.
// Compile a Program instead to evaluate an expression many times, for example
// with a long-lived Env whose variables change between evaluations.
package ibex
