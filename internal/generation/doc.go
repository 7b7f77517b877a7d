// Package generation turns static scenario templates into presentable
// scenarios.
//
// The catalog of templates is loaded once at process or session start, either
// from the embedded default document or from an external JSON file, and is
// read-only afterwards. The generator resolves placeholder text against the
// ranges a template declares, using a seed derived from the scenario index so
// that generation is reproducible. Correctness mapping is fixed: which choice
// is correct, its points, and its score impact are copied from the template
// untouched, and choice order is preserved.
package generation
