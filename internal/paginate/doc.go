/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package paginate lays typed screenplay blocks onto fixed-size pages.
// It fills a page until the next block's measured outer extent would overflow the remaining capacity, then moves that block to a fresh page with a visual separator between pages.
// Paragraphs split at word boundaries only: a binary search over word-count prefixes finds the largest prefix that still fits, and the rest recurses onto following pages.
// Measurement is delegated to an injected Measurer so the engine stays independent of any concrete layout backend.
package paginate
