package crm

// Topics published on the event bus after a change is committed.
const (
	TopicCustomerCreated = "crm:customer.created"
	TopicCustomerDeleted = "crm:customer.deleted"
	TopicProductCreated  = "crm:product.created"
	TopicOrderCreated    = "crm:order.created"
)

// Publisher is the subset of EventBus.Bus the service needs.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

func (s *Service) publish(topic string, args ...interface{}) {
	if s.bus != nil {
		s.bus.Publish(topic, args...)
	}
}
