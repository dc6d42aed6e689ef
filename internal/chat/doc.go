// Package chat orchestrates the support-conversation request flow.
//
// One linear path per incoming message: validate and truncate, resolve the
// conversation (session token = conversation ID), persist the user turn,
// fetch ordered history, generate the assistant reply, persist it, respond.
//
// Two properties are intentional and must not be "fixed":
//
//   - Fail-soft completion: any error from the Replier becomes the reply
//     text (persisted as a normal AI turn); the user never sees an HTTP
//     failure for a completion problem.
//   - No per-conversation locking: two concurrent sends on one session can
//     each fetch a history missing the other's newest message. Matches the
//     source system's behavior.
package chat
