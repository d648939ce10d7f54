package pythontype

// Visitor has one method per data type variant. DataType.Accept calls the
// method matching the receiver's variant.
type Visitor interface {
	VisitUnknown(t *UnknownType)
	VisitNone(t *NoneType)
	VisitBool(t *BoolType)
	VisitInt(t *IntType)
	VisitFloat(t *FloatType)
	VisitComplex(t *ComplexType)
	VisitStr(t *StrType)
	VisitList(t *ListType)
	VisitTuple(t *TupleType)
	VisitDict(t *DictType)
	VisitSet(t *SetType)
	VisitIterable(t *IterableType)
	VisitFun(t *FunType)
	VisitClass(t *ClassType)
	VisitInstance(t *InstanceType)
	VisitModule(t *ModuleType)
	VisitSymbol(t *SymbolType)
	VisitUnion(t *UnionType)
	VisitAwaitable(t *AwaitableType)
}
