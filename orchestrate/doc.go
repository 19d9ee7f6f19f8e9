// Copyright (c) Microsoft. All rights reserved.

// Package orchestrate coordinates multiple agents on a shared task.
//
// Two patterns are provided:
//
//   - [Handoff]: peer agents transfer control to each other through
//     generated transfer tools, the way a call center routes a customer.
//   - [Supervisor]: a supervising model picks which worker agent acts
//     next until it decides the task is finished.
package orchestrate
