// Package redis carries chatter and transform announcements over Redis
// Pub/Sub.
//
// Channels are named "<namespace>/<topic>", or just "<topic>" when the
// namespace is empty. Payloads are JSON envelopes; see ChatterEnvelope and
// TransformEnvelope. Delivery is at-most-once, as with any Redis Pub/Sub
// subscriber.
package redis
