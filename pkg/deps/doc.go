// Package deps reconciles dependency sections between two documents. The
// source document provides the pins; entries the target already declares
// take precedence.
package deps
