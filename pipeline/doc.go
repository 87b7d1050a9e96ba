// Copyright 2025 Campusworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package pipeline orchestrates a question end to end: the router picks a
// strategy, the matching retrieval path gathers context, and the synthesizer
// phrases the final answer. The design rule throughout is that a validated
// question always gets an answer string; failures degrade into sentinel
// context or fixed apologies rather than propagating as errors.
package pipeline
