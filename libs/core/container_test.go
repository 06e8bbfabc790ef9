package core

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures: a small warrior domain exercising interface-typed and
// struct-typed dependencies.

type weapon interface {
	damage() int
}

type katana struct{}

func (katana) damage() int { return 10 }

func newKatana() weapon { return katana{} }

type shuriken struct{}

func (shuriken) damage() int { return 3 }

func newShuriken() weapon { return shuriken{} }

type divineRapier struct{}

func (divineRapier) damage() int { return 100 }

type ninja struct {
	weapon weapon
}

func newNinja(w weapon) *ninja { return &ninja{weapon: w} }

type armory struct {
	weapons []weapon
}

func newArmory(weapons []weapon) *armory { return &armory{weapons: weapons} }

func TestContainer_GetConstantValue(t *testing.T) {
	c := New()
	c.Bind("Answer").ToConstantValue(42)

	value, err := c.Get("Answer")
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestContainer_GetNotRegistered(t *testing.T) {
	c := New()

	_, err := c.Get("Missing")
	require.Error(t, err)

	var notRegistered *NotRegisteredError
	require.ErrorAs(t, err, &notRegistered)
	assert.Equal(t, "Missing", notRegistered.ServiceIdentifier)
}

func TestContainer_GetAmbiguousMatch(t *testing.T) {
	c := New()
	c.Bind("Weapon").To(newKatana)
	c.Bind("Weapon").To(newShuriken)

	_, err := c.Get("Weapon")
	require.Error(t, err)

	var ambiguous *AmbiguousMatchError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.Count)
}

func TestContainer_GetInstanceWithTypeKeyedDependency(t *testing.T) {
	c := New()

	// Unregistered constructors derive their dependency identifiers from
	// the parameter types
	weaponKey := TypeKey((*weapon)(nil))
	c.Bind(weaponKey).To(newKatana)
	c.Bind("Ninja").To(newNinja)

	value, err := c.Get("Ninja")
	require.NoError(t, err)

	n := value.(*ninja)
	assert.Equal(t, 10, n.weapon.damage())
}

func TestContainer_GetInstanceWithRegisteredStringTargets(t *testing.T) {
	t.Cleanup(ClearInjectables)
	MustRegisterInjectable(newNinja, Inject("Weapon"))

	c := New()
	c.Bind("Weapon").To(newShuriken)
	c.Bind("Ninja").To(newNinja)

	value, err := c.Get("Ninja")
	require.NoError(t, err)
	assert.Equal(t, 3, value.(*ninja).weapon.damage())
}

func TestContainer_GetNamed(t *testing.T) {
	c := New()
	c.Bind("Weapon").To(newKatana).WhenTargetNamed("strong")
	c.Bind("Weapon").To(newShuriken).WhenTargetNamed("weak")

	strong, err := c.GetNamed("Weapon", "strong")
	require.NoError(t, err)
	assert.Equal(t, 10, strong.(weapon).damage())

	weak, err := c.GetNamed("Weapon", "weak")
	require.NoError(t, err)
	assert.Equal(t, 3, weak.(weapon).damage())

	// Plain Get matches neither constrained binding
	_, err = c.Get("Weapon")
	var notRegistered *NotRegisteredError
	assert.ErrorAs(t, err, &notRegistered)
}

func TestContainer_GetTagged(t *testing.T) {
	c := New()
	c.Bind("Warrior").ToConstantValue("ninja").WhenTargetTagged("canSneak", true)
	c.Bind("Warrior").ToConstantValue("samurai").WhenTargetTagged("canSneak", false)

	sneaky, err := c.GetTagged("Warrior", "canSneak", true)
	require.NoError(t, err)
	assert.Equal(t, "ninja", sneaky)

	loud, err := c.GetTagged("Warrior", "canSneak", false)
	require.NoError(t, err)
	assert.Equal(t, "samurai", loud)
}

func TestContainer_GetAll(t *testing.T) {
	c := New()
	c.Bind("Weapon").To(newKatana)
	c.Bind("Weapon").To(newShuriken)
	c.Bind("Weapon").To(newKatana).WhenTargetNamed("strong")

	// GetAll ignores constraints and keeps registration order
	values, err := c.GetAll("Weapon")
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, 10, values[0].(weapon).damage())
	assert.Equal(t, 3, values[1].(weapon).damage())
	assert.Equal(t, 10, values[2].(weapon).damage())
}

func TestContainer_GetAllEmptyErrors(t *testing.T) {
	c := New()

	_, err := c.GetAll("Weapon")
	var notRegistered *NotRegisteredError
	assert.ErrorAs(t, err, &notRegistered)
}

func TestContainer_GetAllTagged(t *testing.T) {
	c := New()
	c.Bind("Intl").ToConstantValue(map[string]string{"hello": "bonjour"}).WhenTargetTagged("lang", "fr")
	c.Bind("Intl").ToConstantValue(map[string]string{"goodbye": "au revoir"}).WhenTargetTagged("lang", "fr")
	c.Bind("Intl").ToConstantValue(map[string]string{"hello": "hola"}).WhenTargetTagged("lang", "es")

	french, err := c.GetAllTagged("Intl", "lang", "fr")
	require.NoError(t, err)
	require.Len(t, french, 2)
	assert.Equal(t, map[string]string{"hello": "bonjour"}, french[0])
	assert.Equal(t, map[string]string{"goodbye": "au revoir"}, french[1])

	spanish, err := c.GetAllTagged("Intl", "lang", "es")
	require.NoError(t, err)
	require.Len(t, spanish, 1)
	assert.Equal(t, map[string]string{"hello": "hola"}, spanish[0])
}

func TestContainer_GetAllNamed(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{}).WhenTargetNamed("melee")
	c.Bind("Weapon").ToConstantValue(divineRapier{}).WhenTargetNamed("melee")
	c.Bind("Weapon").ToConstantValue(shuriken{}).WhenTargetNamed("ranged")

	melee, err := c.GetAllNamed("Weapon", "melee")
	require.NoError(t, err)
	require.Len(t, melee, 2)
	assert.Equal(t, 10, melee[0].(weapon).damage())
	assert.Equal(t, 100, melee[1].(weapon).damage())

	ranged, err := c.GetAllNamed("Weapon", "ranged")
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, 3, ranged[0].(weapon).damage())
}

func TestContainer_MultiInjectConstructorArgument(t *testing.T) {
	t.Cleanup(ClearInjectables)
	MustRegisterInjectable(newArmory, InjectAll("Weapon"))

	c := New()
	c.Bind("Weapon").To(newKatana)
	c.Bind("Weapon").To(newShuriken)
	c.Bind("Armory").To(newArmory)

	value, err := c.Get("Armory")
	require.NoError(t, err)

	a := value.(*armory)
	require.Len(t, a.weapons, 2)
	assert.Equal(t, 10, a.weapons[0].damage())
	assert.Equal(t, 3, a.weapons[1].damage())
}

func TestContainer_OptionalDependency(t *testing.T) {
	t.Cleanup(ClearInjectables)
	MustRegisterInjectable(newNinja, Inject("Weapon").Optional())

	c := New()
	c.Bind("Ninja").To(newNinja)

	// Nothing bound for Weapon: the argument resolves to the zero value
	value, err := c.Get("Ninja")
	require.NoError(t, err)
	assert.Nil(t, value.(*ninja).weapon)
}

type chicken struct {
	egg *egg
}

type egg struct {
	chicken *chicken
}

func newChicken(e *egg) *chicken { return &chicken{egg: e} }

func newEgg(c *chicken) *egg { return &egg{chicken: c} }

func TestContainer_CircularDependency(t *testing.T) {
	c := New()
	c.Bind(reflect.TypeOf(&chicken{})).To(newChicken)
	c.Bind(reflect.TypeOf(&egg{})).To(newEgg)

	_, err := c.Get(reflect.TypeOf(&chicken{}))
	require.Error(t, err)

	var circular *CircularDependencyError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, []string{"*core.chicken", "*core.egg", "*core.chicken"}, circular.Chain)
}

func TestContainer_SingletonScope(t *testing.T) {
	c := New()
	calls := 0
	c.Bind("Counter").ToDynamicValue(func(ctx *Context) (interface{}, error) {
		calls++
		return calls, nil
	}).InSingletonScope()

	first, err := c.Get("Counter")
	require.NoError(t, err)
	second, err := c.Get("Counter")
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, calls)
}

func TestContainer_SingletonScopeConcurrentGet(t *testing.T) {
	c := New()
	var constructions int64
	c.Bind("Counter").ToDynamicValue(func(ctx *Context) (interface{}, error) {
		atomic.AddInt64(&constructions, 1)
		return &session{id: int(atomic.LoadInt64(&constructions))}, nil
	}).InSingletonScope()

	var wg sync.WaitGroup
	numGoroutines := 8
	results := make([]interface{}, numGoroutines)
	errs := make([]error, numGoroutines)

	// Concurrently resolve the same singleton binding
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Get("Counter")
		}(i)
	}
	wg.Wait()

	// Exactly one construction, every caller sees the same instance
	assert.Equal(t, int64(1), atomic.LoadInt64(&constructions))
	for i := 0; i < numGoroutines; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
}

func TestContainer_TransientScope(t *testing.T) {
	c := New()
	calls := 0
	c.Bind("Counter").ToDynamicValue(func(ctx *Context) (interface{}, error) {
		calls++
		return calls, nil
	})

	first, _ := c.Get("Counter")
	second, _ := c.Get("Counter")

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

type session struct{ id int }

type leftHandler struct{ session *session }

type rightHandler struct{ session *session }

type dispatcher struct {
	left  *leftHandler
	right *rightHandler
}

func newLeftHandler(s *session) *leftHandler { return &leftHandler{session: s} }

func newRightHandler(s *session) *rightHandler { return &rightHandler{session: s} }

func newDispatcher(l *leftHandler, r *rightHandler) *dispatcher {
	return &dispatcher{left: l, right: r}
}

func TestContainer_RequestScope(t *testing.T) {
	c := New()
	sessionSeq := 0
	c.Bind(reflect.TypeOf(&session{})).ToDynamicValue(func(ctx *Context) (interface{}, error) {
		sessionSeq++
		return &session{id: sessionSeq}, nil
	}).InRequestScope()
	c.Bind(reflect.TypeOf(&leftHandler{})).To(newLeftHandler)
	c.Bind(reflect.TypeOf(&rightHandler{})).To(newRightHandler)
	c.Bind(reflect.TypeOf(&dispatcher{})).To(newDispatcher)

	// Both handlers share one session within a single resolution call
	value, err := c.Get(reflect.TypeOf(&dispatcher{}))
	require.NoError(t, err)
	d := value.(*dispatcher)
	assert.Same(t, d.left.session, d.right.session)

	// A fresh call gets a fresh session
	again, err := c.Get(reflect.TypeOf(&dispatcher{}))
	require.NoError(t, err)
	assert.NotSame(t, d.left.session, again.(*dispatcher).left.session)
}

func TestContainer_Hierarchy(t *testing.T) {
	parent := New()
	parent.Bind("Weapon").ToConstantValue(katana{})

	child := parent.CreateChild()

	// Unbound in the child: the lookup falls through to the parent
	value, err := child.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 10, value.(weapon).damage())

	// A child binding shadows the parent's entirely
	child.Bind("Weapon").ToConstantValue(divineRapier{})
	value, err = child.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 100, value.(weapon).damage())

	// The parent is untouched
	value, err = parent.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 10, value.(weapon).damage())
}

func TestContainer_HierarchyNearestOwnerWins(t *testing.T) {
	parent := New()
	parent.Bind("Weapon").ToConstantValue(katana{}).WhenTargetNamed("strong")

	child := parent.CreateChild()
	child.Bind("Weapon").ToConstantValue(shuriken{})

	// The child owns the identifier, so the parent's named binding is
	// invisible even when the child's own binding does not match
	_, err := child.GetNamed("Weapon", "strong")
	var notRegistered *NotRegisteredError
	assert.ErrorAs(t, err, &notRegistered)
}

func TestContainer_IsBound(t *testing.T) {
	parent := New()
	parent.Bind("Weapon").ToConstantValue(katana{})

	child := parent.CreateChild()

	assert.True(t, parent.IsBound("Weapon"))
	assert.True(t, child.IsBound("Weapon"))
	assert.False(t, child.IsBound("Armor"))
}

func TestContainer_IsBoundNamedAndTagged(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{}).WhenTargetNamed("strong")
	c.Bind("Warrior").ToConstantValue("ninja").WhenTargetTagged("canSneak", true)

	assert.True(t, c.IsBoundNamed("Weapon", "strong"))
	assert.False(t, c.IsBoundNamed("Weapon", "weak"))
	assert.True(t, c.IsBoundTagged("Warrior", "canSneak", true))
	assert.False(t, c.IsBoundTagged("Warrior", "canSneak", false))
	assert.False(t, c.IsBoundTagged("Missing", "canSneak", true))
}

func TestContainer_Rebind(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})
	c.Bind("Weapon").ToConstantValue(shuriken{})

	c.Rebind("Weapon").ToConstantValue(divineRapier{})

	// Rebind leaves exactly one binding
	value, err := c.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 100, value.(weapon).damage())

	// Rebind tolerates a previously unbound identifier
	c.Rebind("Armor").ToConstantValue("leather")
	value, err = c.Get("Armor")
	require.NoError(t, err)
	assert.Equal(t, "leather", value)
}

func TestContainer_Unbind(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})

	require.NoError(t, c.Unbind("Weapon"))
	assert.False(t, c.IsBound("Weapon"))

	err := c.Unbind("Weapon")
	var cannotUnbind *CannotUnbindError
	assert.ErrorAs(t, err, &cannotUnbind)
}

func TestContainer_UnbindRunsDeactivation(t *testing.T) {
	c := New()
	var deactivated interface{}
	c.Bind("DB").ToDynamicValue(func(ctx *Context) (interface{}, error) {
		return "connection", nil
	}).InSingletonScope().OnDeactivation(func(instance interface{}) error {
		deactivated = instance
		return nil
	})

	// Never resolved: removal must not fire the handler
	require.NoError(t, c.Unbind("DB"))
	assert.Nil(t, deactivated)

	c.Bind("DB").ToDynamicValue(func(ctx *Context) (interface{}, error) {
		return "connection", nil
	}).InSingletonScope().OnDeactivation(func(instance interface{}) error {
		deactivated = instance
		return nil
	})
	_, err := c.Get("DB")
	require.NoError(t, err)

	require.NoError(t, c.Unbind("DB"))
	assert.Equal(t, "connection", deactivated)
}

func TestContainer_UnbindAll(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})
	c.Bind("Armor").ToConstantValue("leather")

	require.NoError(t, c.UnbindAll())
	assert.False(t, c.IsBound("Weapon"))
	assert.False(t, c.IsBound("Armor"))
}

func TestContainer_OnActivation(t *testing.T) {
	c := New()
	activations := 0
	c.Bind("Weapon").ToConstantValue(katana{}).OnActivation(func(ctx *Context, instance interface{}) (interface{}, error) {
		activations++
		return divineRapier{}, nil
	})

	// Activation may replace the value; constants activate once and the
	// replacement is cached
	value, err := c.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 100, value.(weapon).damage())

	_, err = c.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 1, activations)
}

func TestContainer_OnActivationError(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{}).OnActivation(func(ctx *Context, instance interface{}) (interface{}, error) {
		return nil, errors.New("forge is cold")
	})

	_, err := c.Get("Weapon")
	assert.EqualError(t, err, "forge is cold")
}

func TestContainer_SnapshotRestore(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})

	c.Snapshot()
	c.Rebind("Weapon").ToConstantValue(divineRapier{})
	c.Bind("Armor").ToConstantValue("leather")

	value, err := c.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 100, value.(weapon).damage())

	require.NoError(t, c.Restore())

	// Every change since the snapshot is discarded
	value, err = c.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 10, value.(weapon).damage())
	assert.False(t, c.IsBound("Armor"))

	err = c.Restore()
	var noMore *NoMoreSnapshotsError
	assert.ErrorAs(t, err, &noMore)
}

func TestContainer_RestoreResetsSingletonCache(t *testing.T) {
	c := New()
	calls := 0
	c.Bind("Counter").ToDynamicValue(func(ctx *Context) (interface{}, error) {
		calls++
		return calls, nil
	}).InSingletonScope()

	c.Snapshot()

	// The cache populated after the snapshot survives repeated lookups
	first, err := c.Get("Counter")
	require.NoError(t, err)
	second, err := c.Get("Counter")
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	// Restore reinstates the pre-snapshot empty cache, so the next
	// resolution recomputes
	require.NoError(t, c.Restore())
	third, err := c.Get("Counter")
	require.NoError(t, err)
	assert.Equal(t, 2, third)
	assert.Equal(t, 2, calls)
}

func TestContainer_SnapshotRestoresMiddleware(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})

	c.Snapshot()
	calls := 0
	c.ApplyMiddleware(func(next Next) Next {
		return func(args NextArgs) (interface{}, error) {
			calls++
			return next(args)
		}
	})

	_, err := c.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Restore())
	_, err = c.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestContainer_MiddlewareOrder(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})

	var order []string
	record := func(name string) Middleware {
		return func(next Next) Next {
			return func(args NextArgs) (interface{}, error) {
				order = append(order, name)
				return next(args)
			}
		}
	}
	c.ApplyMiddleware(record("inner"), record("outer"))

	_, err := c.Get("Weapon")
	require.NoError(t, err)

	// The last middleware applied runs outermost
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestContainer_MiddlewareNilReturn(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})
	c.ApplyMiddleware(func(next Next) Next {
		return func(args NextArgs) (interface{}, error) {
			return nil, nil
		}
	})

	_, err := c.Get("Weapon")
	var invalid *InvalidMiddlewareReturnError
	assert.ErrorAs(t, err, &invalid)
}

func TestContainer_MiddlewareShortCircuit(t *testing.T) {
	c := New()
	c.ApplyMiddleware(func(next Next) Next {
		return func(args NextArgs) (interface{}, error) {
			return "intercepted", nil
		}
	})

	// The middleware replaces resolution entirely; nothing was ever bound
	value, err := c.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, "intercepted", value)
}

func TestContainer_Factory(t *testing.T) {
	c := New()
	produced := 0
	c.Bind("WeaponFactory").ToFactory(func(ctx *Context) FactoryFunc {
		return func() (interface{}, error) {
			produced++
			return katana{}, nil
		}
	})

	value, err := c.Get("WeaponFactory")
	require.NoError(t, err)

	factory := value.(FactoryFunc)
	assert.Equal(t, 0, produced)

	w, err := factory()
	require.NoError(t, err)
	assert.Equal(t, 10, w.(weapon).damage())
	assert.Equal(t, 1, produced)
}

func TestContainer_FactoryNeverCached(t *testing.T) {
	c := New()
	creations := 0
	c.Bind("WeaponFactory").ToFactory(func(ctx *Context) FactoryFunc {
		creations++
		return func() (interface{}, error) { return katana{}, nil }
	}).InSingletonScope()

	_, err := c.Get("WeaponFactory")
	require.NoError(t, err)
	_, err = c.Get("WeaponFactory")
	require.NoError(t, err)

	// Producers defer construction to call time and are never memoized,
	// even under singleton scope
	assert.Equal(t, 2, creations)
}

func TestContainer_AutoFactory(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})
	c.Bind("WeaponFactory").ToAutoFactory("Weapon")

	value, err := c.Get("WeaponFactory")
	require.NoError(t, err)

	w, err := value.(FactoryFunc)()
	require.NoError(t, err)
	assert.Equal(t, 10, w.(weapon).damage())
}

func TestContainer_AutoNamedFactory(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{}).WhenTargetNamed("strong")
	c.Bind("Weapon").ToConstantValue(shuriken{}).WhenTargetNamed("weak")
	c.Bind("WeaponFactory").ToAutoNamedFactory("Weapon")

	value, err := c.Get("WeaponFactory")
	require.NoError(t, err)
	factory := value.(NamedFactoryFunc)

	strong, err := factory("strong")
	require.NoError(t, err)
	assert.Equal(t, 10, strong.(weapon).damage())

	weak, err := factory("weak")
	require.NoError(t, err)
	assert.Equal(t, 3, weak.(weapon).damage())
}

func TestContainer_Provider(t *testing.T) {
	c := New()
	c.Bind("WeaponProvider").ToProvider(func(resCtx *Context) ProviderFunc {
		return func(ctx context.Context) (interface{}, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return katana{}, nil
		}
	})

	value, err := c.Get("WeaponProvider")
	require.NoError(t, err)
	provider := value.(ProviderFunc)

	w, err := provider(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, w.(weapon).damage())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = provider(cancelled)
	assert.Error(t, err)
}

func TestContainer_ConstructorError(t *testing.T) {
	c := New()
	c.Bind("Weapon").To(func() (weapon, error) {
		return nil, errors.New("forge exploded")
	})

	_, err := c.Get("Weapon")
	require.Error(t, err)

	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.EqualError(t, resolution.Cause, "forge exploded")
}

func TestContainer_OptionsValidation(t *testing.T) {
	_, err := NewWithOptions(ContainerOptions{DefaultScope: BindingScope(99)})
	require.Error(t, err)

	var invalid *InvalidContainerOptionsError
	assert.ErrorAs(t, err, &invalid)
}

func TestContainer_DefaultScopeOption(t *testing.T) {
	c, err := NewWithOptions(ContainerOptions{DefaultScope: SingletonScope})
	require.NoError(t, err)

	calls := 0
	c.Bind("Counter").ToDynamicValue(func(ctx *Context) (interface{}, error) {
		calls++
		return calls, nil
	})

	c.Get("Counter")
	c.Get("Counter")
	assert.Equal(t, 1, calls)
}

func TestContainer_AutoBindInjectable(t *testing.T) {
	t.Cleanup(ClearInjectables)
	MustRegisterInjectable(newTestEngine)

	c, err := NewWithOptions(ContainerOptions{
		DefaultScope:       TransientScope,
		AutoBindInjectable: true,
	})
	require.NoError(t, err)

	engineKey := reflect.TypeOf(&testEngine{})
	value, err := c.Get(engineKey)
	require.NoError(t, err)
	assert.Equal(t, 6, value.(*testEngine).cylinders)

	// The implicit binding is registered for subsequent lookups
	assert.True(t, c.IsBound(engineKey))
}

func TestContainer_AutoBindRequiresRegistration(t *testing.T) {
	c, err := NewWithOptions(ContainerOptions{
		DefaultScope:       TransientScope,
		AutoBindInjectable: true,
	})
	require.NoError(t, err)

	_, err = c.Get(reflect.TypeOf(&testCar{}))
	var missing *MissingInjectableAnnotationError
	assert.ErrorAs(t, err, &missing)
}

func TestContainer_Resolve(t *testing.T) {
	c := New()
	weaponKey := TypeKey((*weapon)(nil))
	c.Bind(weaponKey).To(newKatana)

	value, err := c.Resolve(newNinja)
	require.NoError(t, err)
	assert.Equal(t, 10, value.(*ninja).weapon.damage())

	// The constructor itself was never registered on this container
	assert.False(t, c.IsBound(reflect.TypeOf(&ninja{})))
}

func TestContainer_GetInto(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})

	var w weapon
	require.NoError(t, c.GetInto("Weapon", &w))
	assert.Equal(t, 10, w.damage())

	assert.Error(t, c.GetInto("Weapon", w))

	var count int
	assert.Error(t, c.GetInto("Weapon", &count))
}

func TestContainer_MustGet(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})

	assert.Equal(t, 10, c.MustGet("Weapon").(weapon).damage())
	assert.Panics(t, func() { c.MustGet("Missing") })
}

func TestTyped(t *testing.T) {
	c := New()
	c.Bind("Weapon").ToConstantValue(katana{})

	w, err := Typed[weapon](c, "Weapon")
	require.NoError(t, err)
	assert.Equal(t, 10, w.damage())

	_, err = Typed[int](c, "Weapon")
	var resolution *ResolutionError
	assert.ErrorAs(t, err, &resolution)
}

func TestMerge(t *testing.T) {
	first := New()
	first.Bind("Weapon").ToConstantValue(katana{})
	second := New()
	second.Bind("Armor").ToConstantValue("leather")

	merged, err := Merge(first, second)
	require.NoError(t, err)

	w, err := merged.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 10, w.(weapon).damage())

	a, err := merged.Get("Armor")
	require.NoError(t, err)
	assert.Equal(t, "leather", a)

	// The merged container holds clones; rebinding it leaves the sources
	// untouched
	merged.Rebind("Weapon").ToConstantValue(divineRapier{})
	w, err = first.Get("Weapon")
	require.NoError(t, err)
	assert.Equal(t, 10, w.(weapon).damage())
}

func TestContainer_BindRejectsInvalidIdentifier(t *testing.T) {
	c := New()
	assert.Panics(t, func() { c.Bind(42) })
}

func TestContainer_UnconfiguredBinding(t *testing.T) {
	c := New()
	c.Bind("Weapon")

	_, err := c.Get("Weapon")
	var invalid *InvalidBindingError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "production strategy")
}
