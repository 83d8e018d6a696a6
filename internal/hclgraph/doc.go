// Package hclgraph loads a work graph from HCL graph files.
//
// A graph file is a direct serialization of graph nodes. `stack` blocks
// become stack nodes; every `asset` block becomes an `<id>-build` and an
// `<id>-publish` node. Blocks are inserted in file order, files in lexical
// path order, which fixes the tie-break order of the scheduler.
//
//	stack "app" {
//	  environment = "aws://111111111111/eu-west-1"
//	  depends_on  = ["network"]
//	  assets      = ["lambda"]
//	  deploy      = "echo deploying ${env.STAGE}"
//	}
//
//	asset "lambda" {
//	  stack       = "app"
//	  packaging   = "file"
//	  fingerprint = "3f2a"
//	  build       = "echo build"
//	  publish     = "echo publish"
//	}
//
// Strings are HCL templates: `${env.NAME}` reads the environment of the
// loader, and a literal shell expansion in braces is written `$${NAME}`.
package hclgraph
