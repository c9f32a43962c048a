package cssparse

// Handler receives parse events synchronously and in document order.
type Handler interface {
	// HandleImport is called for an @import that precedes every rule set.
	HandleImport(text string)
	// StartRule is called once a selector list has been read.
	StartRule()
	// HandleSelector is called once per selector fragment, before StartRule.
	HandleSelector(text string)
	// HandleProperty receives a lower-cased property name.
	HandleProperty(name string)
	// HandleValue receives the value of the preceding property.
	HandleValue(text string)
	// EndRule is called after the rule's declaration block closes.
	EndRule()
}

type multiHandler []Handler

// MultiHandler fans every event out to hs, in order.
func MultiHandler(hs ...Handler) Handler {
	return multiHandler(hs)
}

func (m multiHandler) HandleImport(text string) {
	for _, h := range m {
		h.HandleImport(text)
	}
}

func (m multiHandler) StartRule() {
	for _, h := range m {
		h.StartRule()
	}
}

func (m multiHandler) HandleSelector(text string) {
	for _, h := range m {
		h.HandleSelector(text)
	}
}

func (m multiHandler) HandleProperty(name string) {
	for _, h := range m {
		h.HandleProperty(name)
	}
}

func (m multiHandler) HandleValue(text string) {
	for _, h := range m {
		h.HandleValue(text)
	}
}

func (m multiHandler) EndRule() {
	for _, h := range m {
		h.EndRule()
	}
}
