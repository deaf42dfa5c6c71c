// Package notification carries "entities saved" and "entities published"
// notifications to their subscribers.
//
// Bus is a synchronous in-process hub: Publish returns only after every
// subscriber of the (kind, event) pair has run, and the first subscriber error
// becomes the publish error. Consumer feeds the bus from a kafka topic of JSON
// notifications such as
//
//	{"kind":"document","event":"published","ids":[1051,1052]}
//
// committing each message once it has been handled.
package notification
