package actor

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Spawn creates a new child actor of message type M under parent (either
// a *System, landing the child under /user, or a *Context, landing the
// child under the calling actor) and returns its typed reference. This
// is a free function rather than a method because Go methods cannot
// introduce their own type parameters.
func Spawn[M any](parent Parenter, name string, producer Producer[M]) (ActorRef[M], error) {
	return createActor[M](parent.cellRef(), name, producer, 0)
}

// SpawnWithLimit is Spawn with an explicit per-actor msg_process_limit
// override, rather than the system-wide config default.
func SpawnWithLimit[M any](parent Parenter, name string, producer Producer[M], msgProcessLimit uint32) (ActorRef[M], error) {
	return createActor[M](parent.cellRef(), name, producer, msgProcessLimit)
}

// SpawnTmp creates an auto-named child under /temp. Auto-naming uses a
// UUID suffix, consistent with this module's broader adoption of
// google/uuid for generated identifiers.
func SpawnTmp[M any](sys *System, producer Producer[M]) (ActorRef[M], error) {
	name := "tmp-" + uuid.NewString()
	return createActor[M](sys.tempGuardian, name, producer, 0)
}

func createActor[M any](parent *cell, name string, producer Producer[M], msgProcessLimit uint32) (ActorRef[M], error) {
	if err := ValidateName(name); err != nil {
		return ActorRef[M]{}, err
	}

	sys := parent.system
	path := childPath(parent.uri.Path, name)
	if !sys.paths.tryInsert(path) {
		return ActorRef[M]{}, &AlreadyExistsError{Path: path}
	}

	if msgProcessLimit == 0 {
		msgProcessLimit = sys.cfg.Mailbox.MsgProcessLimit
	}

	c := &cell{
		uri:        URI{Name: name, Path: path, Host: "local"},
		parent:     parent.basicRef(),
		system:     sys,
		children:   newChildrenMap(),
		mbox:       newMailbox(msgProcessLimit),
		kernelCtl:  make(chan kernelCtrl, controlChanBufferSize),
		msgType:    reflect.TypeOf((*M)(nil)).Elem(),
		terminated: make(chan struct{}),
	}

	c.newShell = func() (sh shell, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanickedError{Name: name, Recovered: r}
			}
		}()
		a := producer()
		c.instanceID = uuid.New()
		ctx := &Context[M]{cell: c}
		ctx.self = ActorRef[M]{c: c}
		return &typedShell[M]{actor: a, ctx: ctx}, nil
	}

	sh, err := c.newShell()
	if err != nil {
		sys.paths.remove(path)
		return ActorRef[M]{}, err
	}

	sys.log().Debugw("spawning actor", "path", path)

	sys.executor.Spawn(func() { runKernel(c, sh) })

	parent.children.add(name, c.basicRef())
	c.tellSys(sysActorInit{})
	sys.publishEvent(SystemEvent{Type: EventActorCreated, Ref: *c.basicRef()})

	return ActorRef[M]{c: c}, nil
}

// createRootCell bootstraps one of the four reserved root paths. Unlike
// createActor it does not go through the path-collision check against an
// existing parent (the registry is empty at this point) and it never
// publishes ActorCreated for itself (there is nobody listening yet for
// "/" and the guardians are implementation detail, not user actors).
func createRootCell[M any](sys *System, parent *cell, name, path string, producer Producer[M]) (*cell, shell) {
	c := &cell{
		uri:        URI{Name: name, Path: path, Host: "local"},
		system:     sys,
		children:   newChildrenMap(),
		mbox:       newMailbox(sys.cfg.Mailbox.MsgProcessLimit),
		kernelCtl:  make(chan kernelCtrl, controlChanBufferSize),
		msgType:    reflect.TypeOf((*M)(nil)).Elem(),
		terminated: make(chan struct{}),
	}
	if parent != nil {
		c.parent = parent.basicRef()
	}

	c.newShell = func() (shell, error) {
		a := producer()
		c.instanceID = uuid.New()
		ctx := &Context[M]{cell: c}
		ctx.self = ActorRef[M]{c: c}
		return &typedShell[M]{actor: a, ctx: ctx}, nil
	}

	sh, err := c.newShell()
	if err != nil {
		panic(fmt.Sprintf("actor: root guardian %q failed to start: %v", path, err))
	}

	sys.paths.tryInsert(path)
	if parent != nil {
		parent.children.add(name, c.basicRef())
	}
	return c, sh
}
