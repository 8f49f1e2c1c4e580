package bot

import "uybor/internal/core/ports"

// Handler constructors take the shared dependency bundle, so main wires
// everything once and handlers register themselves from init().

type CommandHandlerConstructor func(deps *Deps) ports.CommandHandler

type CallbackHandlerConstructor func(deps *Deps) ports.CallbackHandler

type MessageHandlerConstructor func(deps *Deps) ports.MessageHandler

type SubscriberConstructor func(deps *Deps)

var (
	commandRegistry    []CommandHandlerConstructor
	callbackRegistry   []CallbackHandlerConstructor
	messageConstructor MessageHandlerConstructor
	subscriberRegistry []SubscriberConstructor
)

// RegisterCommand is called by handlers in their init() function.
func RegisterCommand(constructor CommandHandlerConstructor) {
	commandRegistry = append(commandRegistry, constructor)
}

// RegisterCallback is called by callback handlers in their init().
func RegisterCallback(constructor CallbackHandlerConstructor) {
	callbackRegistry = append(callbackRegistry, constructor)
}

// RegisterMessage sets the single free-form message handler.
func RegisterMessage(constructor MessageHandlerConstructor) {
	messageConstructor = constructor
}

// RegisterSubscriber is called by event subscribers in their init(); the
// constructor is expected to subscribe itself on deps.Bus.
func RegisterSubscriber(constructor SubscriberConstructor) {
	subscriberRegistry = append(subscriberRegistry, constructor)
}

// RegisterAllHandlers builds every registered handler and attaches it to
// the router. Called once from main.
func RegisterAllHandlers(router *Router, deps *Deps) {
	for _, constructor := range commandRegistry {
		router.RegisterCommandHandler(constructor(deps))
	}
	for _, constructor := range callbackRegistry {
		router.RegisterCallbackHandler(constructor(deps))
	}
	if messageConstructor != nil {
		router.SetMessageHandler(messageConstructor(deps))
	}
	for _, constructor := range subscriberRegistry {
		constructor(deps)
	}
}
