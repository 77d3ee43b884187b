/*
Package tabulated turns a factored domain into a fully enumerated one.

A Wrapper enumerates every state reachable from its seeds and then generates a
domain whose states carry a single integer attribute ("state" on the object
class "state") and whose actions are thin wrappers over the source actions:
decode the id, delegate to the source action, encode the result.

Generate the domain only after every seed has been explored. States discovered
afterwards still resolve, but their ids fall outside the advertised bounds of
the "state" attribute.
*/
package tabulated
