// Package hash provides one-way hashing for short secrets such as one-time
// codes. Only the hash is stored; verification compares a plaintext candidate
// against it.
package hash
