/*
Package session implements persistence for interactive stepping sessions.

A session is a Snapshot of one automaton, advanced one transition at a time by
callers such as the HTTP adapter. The Manager serializes access per session ID,
locally and (optionally) across replicas through a distributed locker, so that
concurrent steps on the same session never interleave.
*/
package session
