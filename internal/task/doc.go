// Package task manages background job queuing, processing, and lifecycle.
// It provides mechanisms for asynchronous execution of long-running
// operations like report generation, ensuring they don't block HTTP
// request handling, plus an in-memory simulator for long-running work.
package task
