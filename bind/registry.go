package bind

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	interpguard "github.com/wippyai/interp-guard"
	"github.com/wippyai/interp-guard/errors"
)

// Host is the interface for struct-based native modules. All exported
// methods (except Namespace) are registered as guarded functions.
type Host interface {
	// Namespace returns the interpreter-side module name the host's
	// functions are installed under.
	Namespace() string
}

// Registry collects namespaced native functions before they are exposed to
// an interpreter. Registration validates the callable's shape immediately;
// guarding and exposure happen in Bind.
type Registry struct {
	funcs map[string]map[string]*regFunc
	mu    sync.RWMutex
}

type regFunc struct {
	fn        any
	policy    Policy
	hasPolicy bool
}

func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]map[string]*regFunc),
	}
}

// RegisterFunc registers fn under namespace/name with the adapter's
// default call policy.
func (r *Registry) RegisterFunc(namespace, name string, fn any) error {
	return r.register(namespace, name, fn, nil, false)
}

// RegisterFuncWithPolicy registers fn with an explicit call policy.
func (r *Registry) RegisterFuncWithPolicy(namespace, name string, fn any, policy Policy) error {
	return r.register(namespace, name, fn, policy, true)
}

func (r *Registry) register(namespace, name string, fn any, policy Policy, hasPolicy bool) error {
	if namespace == "" {
		return errors.InvalidInput(errors.PhaseWrap, "namespace cannot be empty")
	}
	if name == "" {
		return errors.InvalidInput(errors.PhaseWrap, "function name cannot be empty")
	}
	if _, err := SignatureOf(fn); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs[namespace] == nil {
		r.funcs[namespace] = make(map[string]*regFunc)
	}
	r.funcs[namespace][name] = &regFunc{
		fn:        fn,
		policy:    policy,
		hasPolicy: hasPolicy,
	}
	return nil
}

// RegisterHost registers all exported methods of h as guarded functions
// under h's namespace. Method names are converted from PascalCase to
// kebab-case (GetValue -> get-value). Methods are registered in bound
// form, so the receiver does not appear in the interpreter-side signature.
func (r *Registry) RegisterHost(h Host) error {
	ns := h.Namespace()
	if ns == "" {
		return errors.InvalidInput(errors.PhaseWrap, "namespace cannot be empty")
	}

	rv := reflect.ValueOf(h)
	rt := rv.Type()

	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)
		if !method.IsExported() || method.Name == "Namespace" {
			continue
		}
		name := toKebabCase(method.Name)
		if err := r.register(ns, name, rv.Method(i).Interface(), nil, false); err != nil {
			return errors.Registration(errors.PhaseWrap, ns, name, err)
		}
	}
	return nil
}

// Bind guards every registered function against lock and installs the
// exposed objects through in. Functions registered without a policy use
// in.DefaultPolicy().
func (r *Registry) Bind(in Installer, lock interpguard.StateLock) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for namespace, fns := range r.funcs {
		for name, rf := range fns {
			policy := in.DefaultPolicy()
			if rf.hasPolicy {
				policy = rf.policy
			}
			obj, err := WithPolicy(in, lock, rf.fn, policy)
			if err != nil {
				return errors.Registration(errors.PhaseExpose, namespace, name, err)
			}
			if err := in.Install(namespace, name, obj); err != nil {
				return errors.Registration(errors.PhaseInstall, namespace, name, err)
			}
			Logger().Debug("installed guarded function",
				zap.String("namespace", namespace),
				zap.String("name", name))
		}
	}
	return nil
}

// toKebabCase converts PascalCase to kebab-case.
// Handles acronyms: GetHTTPURL -> get-http-url
func toKebabCase(s string) string {
	if len(s) == 0 {
		return ""
	}

	runes := []rune(s)
	var result strings.Builder

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if unicode.IsUpper(r) {
			acronymEnd := i + 1
			for acronymEnd < len(runes) && unicode.IsUpper(runes[acronymEnd]) {
				acronymEnd++
			}

			if acronymEnd > i+1 {
				// Last uppercase before lowercase starts next word, not part of acronym
				if acronymEnd < len(runes) && unicode.IsLower(runes[acronymEnd]) {
					acronymEnd--
				}
			}

			if i > 0 {
				result.WriteByte('-')
			}

			for j := i; j < acronymEnd; j++ {
				result.WriteRune(unicode.ToLower(runes[j]))
			}
			i = acronymEnd - 1 // -1 because loop will increment
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
