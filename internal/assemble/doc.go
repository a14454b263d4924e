/*
Package assemble turns a render request into a validated generation graph.
It is the bridge between the static request model (the 'config' package) and
the graph handed to the inference engine (the 'graph' package).

Assembly is a fixed multi-phase pipeline:

 1. Template: the base text-to-image graph is built from the core
    parameters — prompts, dimensions, sampler settings, seed, and the
    resolved base model. The base graph alone is structurally valid.

 2. Feature transforms, in order: adapter chaining (LoRA), dynamic-prompt
    expansion, external conditioning (ControlNet), and decoder override
    (VAE). Each transform mutates the graph in place, rewiring or adding
    edges for one optional capability. Adapter chaining must settle before
    prompt expansion rewrites conditioning literals; the last two touch
    disjoint fields but must follow the chain so they attach to final
    node wiring.

 3. Validation: the graph's structural invariants are checked once, after
    the full sequence. A violation means a transform is buggy and assembly
    fails loudly rather than returning a partially wired graph.

Assembly is synchronous and free of I/O. Each call owns its graph, so
concurrent assemblies need no locking as long as the shared Resolver is safe
for concurrent reads.
*/
package assemble
