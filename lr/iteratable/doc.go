/*
Package iteratable implements an iteratable container data structure.

Set is a speical purpose set type, suitable mainly for implementing algorithms
around grammar analysis, closures, worklists, etc. These kinds of algorihms
are often more straightforward to describe as set constructions and
operations.

Unusually, Union is destructive: it modifies the receiver! Difference and
Copy return new sets.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
