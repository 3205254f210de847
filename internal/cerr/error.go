// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cerr

import (
	"github.com/pkg/errors"
	errorkit "gopkg.in/src-d/go-errors.v1"
)

// NodeID names a node without depending on the node package, so that
// cerr can be imported by node, resolve, translate, assemble and render
// alike without an import cycle.
type NodeID string

// CompileError is the error interface returned by every pass. It carries
// the identity of the offending node so that a surrounding pretty-printer
// can highlight the subtree that failed.
type CompileError interface {
	error
	// NodeID is the identity of the node where the failure occurred.
	NodeID() NodeID
	// Kind reports the underlying errorkit.Kind for switch-based dispatch.
	Kind() *errorkit.Kind
}

type compileError struct {
	cause  error
	nodeID NodeID
	kind   *errorkit.Kind
}

func (e *compileError) Error() string { return e.cause.Error() }
func (e *compileError) Cause() error  { return e.cause }
func (e *compileError) Unwrap() error { return e.cause }

func (e *compileError) NodeID() NodeID      { return e.nodeID }
func (e *compileError) Kind() *errorkit.Kind { return e.kind }

// At wraps a *errorkit.Kind instantiation (the result of calling
// kind.New(args...)) with the identity of the offending node. Every pass
// calls this at the point of failure so the node is never lost on the way
// up the call stack.
func At(node NodeID, kind *errorkit.Kind, args ...interface{}) CompileError {
	return &compileError{
		cause:  kind.New(args...),
		nodeID: node,
		kind:   kind,
	}
}

// Wrap attaches node identity to an error raised by a lower layer (for
// example, a dialect's feature check) without discarding the original
// error chain.
func Wrap(node NodeID, err error) CompileError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(CompileError); ok {
		return ce
	}
	return &compileError{
		cause:  errors.WithStack(err),
		nodeID: node,
	}
}
