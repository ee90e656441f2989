// Package ir provides the expression tree, dialect configuration, and
// error taxonomy shared by every layer of relq.
//
// This package contains type definitions and pure constructors only. All
// other packages import ir; ir imports nothing internal. This ensures the
// expression tree remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Expr is a sealed interface: the compiler's variant set is closed, and
//     adding a literal kind means extending every type switch over it.
//   - All nodes are immutable values. Rendering a node depends only on its
//     own subtree plus the Dialect in effect, never on shared mutable state.
//   - Raw name tokens (Name) exist only as an input-compatibility shim;
//     they are decoded into ColumnRef/QualifiedColumnRef at the API
//     boundary and never carried deeper.
package ir
